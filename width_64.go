//go:build smallstr64

package smallstr

// LineWidth is the cache-line size lines are packed and aligned to.
const LineWidth = 64
