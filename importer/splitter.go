package importer

import (
	"strings"

	"bulkunit/unit"
)

// labelSeparator splits a sheet label into project name and possession
// date, e.g. "Sky Tower BBay - Q4 2028".
const labelSeparator = " - "

// SplitSheetLabel parses a sheet label into the project name and the
// optional possession date. The substring before the first separator
// is the name; without a separator the whole label is the name.
func SplitSheetLabel(label string) (name, possessionDate string) {
	trimmed := strings.TrimSpace(label)
	before, after, found := strings.Cut(trimmed, labelSeparator)
	if !found {
		return trimmed, ""
	}
	return strings.TrimSpace(before), strings.TrimSpace(after)
}

// BatchFromSheet derives one ProjectBatch from a sheet. The first row
// is always the header; every later row is a candidate unit. Sheets
// with fewer than two rows are skipped (a sheet may be a legend or
// notes tab), as are sheets producing zero valid units. The second
// return value counts structural row skips; the third reports whether
// a batch was produced.
func BatchFromSheet(sheet Sheet, synonyms Synonyms, sourceFile string) (unit.ProjectBatch, int, bool) {
	if len(sheet.Rows) < 2 {
		return unit.ProjectBatch{}, 0, false
	}

	name, possessionDate := SplitSheetLabel(sheet.Name)
	columns := synonyms.MapColumns(sheet.Rows[0])

	units := make([]unit.ParsedUnit, 0, len(sheet.Rows)-1)
	dropped := 0
	for i, row := range sheet.Rows[1:] {
		parsed, ok := NormalizeRow(row, columns, i+2)
		if !ok {
			dropped++
			continue
		}
		parsed.SourceFile = sourceFile
		units = append(units, *parsed)
	}

	if len(units) == 0 {
		return unit.ProjectBatch{}, dropped, false
	}

	return unit.ProjectBatch{
		Name:           name,
		PossessionDate: possessionDate,
		Units:          units,
		SourceSheet:    sheet.Name,
	}, dropped, true
}
