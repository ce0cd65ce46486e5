package itup

// PageGeometry describes the pages a storage layer places tuples on.
type PageGeometry struct {
	PageSize       int `yaml:"page_size"`
	PageHeaderSize int `yaml:"page_header_size"`
	SlotSize       int `yaml:"slot_size"`
}

// DefaultPageGeometry is an 8 KiB page with a 24 byte header and 4 byte
// line pointers.
var DefaultPageGeometry = PageGeometry{
	PageSize:       8192,
	PageHeaderSize: 24,
	SlotSize:       4,
}

// MinTupleFootprint is the smallest page space a tuple plus its slot can
// take. A tuple carries data or a null bitmap, so it is at least one byte
// longer than a bare header, and it is stored max-aligned.
func (g PageGeometry) MinTupleFootprint() int {
	return maxAlign(HeaderSize+1) + g.SlotSize
}

// MaxTuplesPerPage bounds how many tuples fit on one page. It ignores any
// space an access method reserves at the end of the page, so it may
// overestimate but never underestimate.
func MaxTuplesPerPage(g PageGeometry) int {
	usable := g.PageSize - g.PageHeaderSize
	if usable <= 0 || g.SlotSize < 0 {
		return 0
	}
	return usable / g.MinTupleFootprint()
}
