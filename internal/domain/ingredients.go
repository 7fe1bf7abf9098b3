package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Ingredients is either a structured list of ingredient names or a blob of
// free text (older rows and bulk imports store whatever the owner typed).
// Reads normalize: a JSON array becomes a list, anything else stays raw.
type Ingredients struct {
	List []string
	Raw  string
}

func IngredientsFromList(items []string) Ingredients {
	if items == nil {
		items = []string{}
	}
	return Ingredients{List: items}
}

func IngredientsFromText(s string) Ingredients {
	return Ingredients{Raw: strings.TrimSpace(s)}
}

// ParseIngredients normalizes a stored column value.
func ParseIngredients(s string) Ingredients {
	s = strings.TrimSpace(s)
	if s == "" {
		return Ingredients{List: []string{}}
	}
	if strings.HasPrefix(s, "[") {
		var items []string
		if err := json.Unmarshal([]byte(s), &items); err == nil {
			return Ingredients{List: items}
		}
	}
	return Ingredients{Raw: s}
}

// Structured reports whether the value is a proper list.
func (i Ingredients) Structured() bool { return i.List != nil }

// Items returns the list form, splitting raw text on commas/newlines.
func (i Ingredients) Items() []string {
	if i.List != nil {
		return i.List
	}
	var out []string
	for _, part := range strings.FieldsFunc(i.Raw, func(r rune) bool { return r == ',' || r == '\n' || r == ';' }) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (i Ingredients) String() string {
	if i.List != nil {
		return strings.Join(i.List, ", ")
	}
	return i.Raw
}

// Scan implements sql.Scanner so sqlx can read the column directly.
func (i *Ingredients) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*i = Ingredients{List: []string{}}
	case string:
		*i = ParseIngredients(v)
	case []byte:
		*i = ParseIngredients(string(v))
	default:
		return fmt.Errorf("ingredients: cannot scan %T", src)
	}
	return nil
}

// Value stores structured lists as a JSON array, raw text as-is.
func (i Ingredients) Value() (driver.Value, error) {
	if i.List != nil {
		b, err := json.Marshal(i.List)
		if err != nil {
			return nil, err
		}
		return string(b), nil
	}
	return i.Raw, nil
}

func (i Ingredients) MarshalJSON() ([]byte, error) {
	if i.List != nil {
		return json.Marshal(i.List)
	}
	return json.Marshal(i.Raw)
}

func (i *Ingredients) UnmarshalJSON(b []byte) error {
	var items []string
	if err := json.Unmarshal(b, &items); err == nil {
		*i = Ingredients{List: items}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*i = ParseIngredients(s)
	return nil
}
