package enrich

import (
	"fmt"
	"strings"

	"github.com/sells-group/lead-enricher/internal/model"
)

// GroupDuplicates partitions lead emails by exact normalized value and flags
// every lead whose email appears more than once. Group identifiers are
// assigned in the order groups are first seen scanning top to bottom, so a
// given input order always reproduces the same identifiers.
//
// Empty values and the literal "nan" (the stringified missing cell produced
// by spreadsheet round-trips) never group.
func GroupDuplicates(emails []string) []model.DuplicateFlag {
	norm := make([]string, len(emails))
	counts := make(map[string]int, len(emails))
	for i, e := range emails {
		n := strings.ToLower(strings.TrimSpace(e))
		if n == "nan" {
			n = ""
		}
		norm[i] = n
		if n != "" {
			counts[n]++
		}
	}

	flags := make([]model.DuplicateFlag, len(emails))
	groupIDs := make(map[string]string)
	next := 1
	for i, n := range norm {
		if n == "" || counts[n] < 2 {
			continue
		}
		id, ok := groupIDs[n]
		if !ok {
			id = fmt.Sprintf("DUP-%03d", next)
			groupIDs[n] = id
			next++
		}
		flags[i] = model.DuplicateFlag{
			IsDuplicate: true,
			GroupID:     id,
			Reason:      model.DuplicateReasonEmailExact,
		}
	}

	return flags
}
