package pagination

const defaultLimit = 10

// Params embeds into huma input structs for paginated list operations.
type Params struct {
	Cursor string `query:"cursor" doc:"Opaque pagination cursor from a previous Link header"`
	Limit  int    `query:"limit"  doc:"Maximum items per page" default:"10" minimum:"1" maximum:"50"`
}

// PageSize returns Limit, or the default when unset.
func (p Params) PageSize() int {
	if p.Limit <= 0 {
		return defaultLimit
	}
	return p.Limit
}
