package repository

// SubnetQuery is a keyset window over live subnets ordered by insertion sequence.
// Name filters by exact match when set.
type SubnetQuery struct {
	Name     *string
	AfterSeq int64
	Limit    int
}

// PageCursor is what a page link resolves to: enough state to serve the page it names.
// Prev is the link of the page before it, empty for the first page.
type PageCursor struct {
	Name     *string `json:"name,omitempty"`
	Limit    int     `json:"limit"`
	AfterSeq int64   `json:"after_seq"`
	Prev     string  `json:"prev,omitempty"`
}
