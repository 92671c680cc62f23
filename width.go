//go:build !smallstr64

package smallstr

// LineWidth is the cache-line size lines are packed and aligned to.
// Build with -tags smallstr64 for 64-byte lines.
const LineWidth = 32
