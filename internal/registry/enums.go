package registry

// enumTables partitions enum string values by "Record.Field", mirroring
// the sentinel-delimited flat C string table of the original: values
// within a partition map to consecutive non-negative integers in
// declaration order, an unmatched string maps to -1, and an absent
// field maps to -1.
var enumTables = map[string][]string{
	"Node.Type":              {"root", "output", "con", "floating_con", "workspace", "dockarea"},
	"Node.Border":            {"normal", "none", "pixel", "csd"},
	"Node.Layout":            {"splith", "splitv", "stacked", "tabbed", "dockarea", "output"},
	"Node.Orientation":       {"none", "horizontal", "vertical"},
	"Node.WindowType":        {"normal", "dialog", "utility", "toolbar", "splash"},
	"EventWorkspace.Change":  {"init", "empty", "focus", "urgent", "rename", "restored", "move", "reload"},
	"EventOutput.Change":     {"unspecified"},
	"EventWindow.Change":     {"new", "close", "focus", "title", "fullscreen_mode", "move", "floating", "urgent", "mark"},
	"EventBinding.Change":    {"run"},
	"EventShutdown.Change":   {"restart", "exit"},
	"EventBindingBinding.InputType": {"keyboard", "mouse"},
}

// EnumIndex returns the index of value within the partition, or -1 if
// the partition is undeclared or value does not appear in it.
func EnumIndex(partition, value string) int {
	table, ok := enumTables[partition]
	if !ok {
		return -1
	}
	for i, v := range table {
		if v == value {
			return i
		}
	}
	return -1
}

// EnumName is the inverse of EnumIndex: the string at idx within the
// named partition, or "" if out of range.
func EnumName(partition string, idx int) string {
	table, ok := enumTables[partition]
	if !ok || idx < 0 || idx >= len(table) {
		return ""
	}
	return table[idx]
}
