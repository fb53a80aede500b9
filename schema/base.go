package schema

// Base is a base schema meant to be embedded by concrete schemas.
type Base struct{}

// String implements the Schema interface
func (r Base) String() string {
	return ""
}
