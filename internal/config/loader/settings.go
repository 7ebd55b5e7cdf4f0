package loader

import (
	"sort"
)

// KeySettings names the table of setting declarations.
const KeySettings = "settings"

// SettingDecl declares one setting in an options file:
//
//	[settings.scroll-step]
//	type = "integer"
//	default = 3
//	min = 1
type SettingDecl struct {
	Name        string
	Type        string
	Default     any
	Description string
	Choices     []string
	Min         *float64
	Max         *float64
}

// settingDecls reads the settings table, sorted by name.
func settingDecls(m map[string]any) ([]SettingDecl, error) {
	raw, ok := m[KeySettings]
	if !ok || raw == nil {
		return nil, nil
	}
	table, ok := raw.(map[string]any)
	if !ok {
		return nil, &TypeError{Key: KeySettings, Want: "table", Got: raw}
	}

	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)

	decls := make([]SettingDecl, 0, len(names))
	for _, name := range names {
		key := KeySettings + "." + name
		fields, ok := table[name].(map[string]any)
		if !ok {
			return nil, &TypeError{Key: key, Want: "table", Got: table[name]}
		}

		d := SettingDecl{Name: name, Default: fields["default"]}
		var err error
		if d.Type, err = stringValue(fields, "type"); err != nil {
			return nil, prefixKey(err, key)
		}
		if d.Description, err = stringValue(fields, "description"); err != nil {
			return nil, prefixKey(err, key)
		}
		if d.Choices, err = stringList(fields, "choices"); err != nil {
			return nil, prefixKey(err, key)
		}
		if d.Min, err = numberValue(fields, "min"); err != nil {
			return nil, prefixKey(err, key)
		}
		if d.Max, err = numberValue(fields, "max"); err != nil {
			return nil, prefixKey(err, key)
		}
		decls = append(decls, d)
	}
	return decls, nil
}

func numberValue(m map[string]any, key string) (*float64, error) {
	var f float64
	switch v := m[key].(type) {
	case nil:
		return nil, nil
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint64:
		f = float64(v)
	case float64:
		f = v
	default:
		return nil, &TypeError{Key: key, Want: "number", Got: v}
	}
	return &f, nil
}

func prefixKey(err error, prefix string) error {
	if terr, ok := err.(*TypeError); ok {
		terr.Key = prefix + "." + terr.Key
	}
	return err
}
