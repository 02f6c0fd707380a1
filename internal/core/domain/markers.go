package domain

// Textual markers the extractors embed so later passes can rescan combined text.
const (
	HeadingMarker = "##"
	TableMarker   = "### TABLE CONTENT ###"
	TableCellSep  = " | "
)

// PageMarkerPattern matches the separator inserted before every page after the first.
const PageMarkerPattern = `^--- Page \d+ ---$`
