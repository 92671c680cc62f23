// Construction options.
package smallstr

import "go.uber.org/zap"

// Config holds construction options. The zero value is ready to use.
type Config struct {
	Logger           *zap.Logger // Debug output for construction (default no-op)
	RejectDuplicates bool        // Fail with ErrDuplicate instead of keeping the first
}

// withDefaults fills in unset fields.
func (c Config) withDefaults() Config {
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}
