package brackets

import (
	"slices"
	"strconv"
)

// AssignSeeds maps every group rank position to its team: {"A1": "CAN", ...}.
// Rows without a group are skipped since they have no seed token.
func AssignSeeds(tables GroupTables) map[string]string {
	seeds := make(map[string]string)
	for group, rows := range tables {
		if group == "" {
			continue
		}
		for _, row := range rows {
			seeds[group+strconv.Itoa(row.RankInGroup)] = row.TeamCode
		}
	}
	return seeds
}

// AssignHostSeeds adds "H<rank>" aliases for host teams, where rank is the
// host's position inside its own group.
func AssignHostSeeds(tables GroupTables, hosts []string) map[string]string {
	aliases := make(map[string]string)
	if len(hosts) == 0 {
		return aliases
	}
	for _, group := range tables.Groups() {
		for _, row := range tables[group] {
			if slices.Contains(hosts, row.TeamCode) {
				aliases["H"+strconv.Itoa(row.RankInGroup)] = row.TeamCode
			}
		}
	}
	return aliases
}
