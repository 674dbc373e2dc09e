package models

// Role types are stored by ID; the display names label keyboard buttons.

var RoleTypeMapping = map[string]string{
	"Full time": "full_time",
	"Part time": "part_time",
	"Contract":  "contract",
}

var RoleTypeDisplayNames = map[string]string{
	"full_time": "Full time",
	"part_time": "Part time",
	"contract":  "Contract",
}

var PeriodDisplayNames = map[string]string{
	"today": "Today",
	"week":  "Past week",
	"month": "Past month",
}

func RoleTypeOptions() []string {
	return []string{
		"Full time",
		"Part time",
		"Contract",
	}
}

func PeriodOptions() []string {
	return []string{
		"Today",
		"Past week",
		"Past month",
	}
}

// GetRoleTypeID returns "" for an unknown display name.
func GetRoleTypeID(displayName string) string {
	if id, ok := RoleTypeMapping[displayName]; ok {
		return id
	}
	return ""
}

func GetRoleTypeDisplayName(id string) string {
	if name, ok := RoleTypeDisplayNames[id]; ok {
		return name
	}
	return id
}

func GetPeriodDisplayName(id string) string {
	if name, ok := PeriodDisplayNames[id]; ok {
		return name
	}
	return id
}
