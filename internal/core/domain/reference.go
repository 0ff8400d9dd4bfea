package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// RefKind tags which shape a Reference arrived in.
type RefKind int

const (
	RefNone   RefKind = iota // absent or null
	RefValue                 // bare id, code, or name
	RefObject                // embedded object carrying some of id, code, name
)

// Reference is a loosely typed pointer to an account or journal. Upstream
// payloads send either a bare string or an embedded object; both decode here.
type Reference struct {
	Kind  RefKind
	Value string

	ID   string
	Code string
	Name string
}

// RefFromString builds a bare-value reference.
func RefFromString(s string) Reference {
	s = strings.TrimSpace(s)
	if s == "" {
		return Reference{}
	}
	return Reference{Kind: RefValue, Value: s}
}

// RefFromObject builds an embedded-object reference.
func RefFromObject(id, code, name string) Reference {
	r := Reference{
		Kind: RefObject,
		ID:   strings.TrimSpace(id),
		Code: strings.TrimSpace(code),
		Name: strings.TrimSpace(name),
	}
	if r.ID == "" && r.Code == "" && r.Name == "" {
		return Reference{}
	}
	return r
}

// ReferenceFromJSON reads a reference from an already parsed JSON value.
// Objects may carry the id under "id" or "_id".
func ReferenceFromJSON(v gjson.Result) Reference {
	switch {
	case !v.Exists() || v.Type == gjson.Null:
		return Reference{}
	case v.IsObject():
		id := v.Get("id")
		if !id.Exists() || id.String() == "" {
			id = v.Get("_id")
		}
		return RefFromObject(id.String(), v.Get("code").String(), v.Get("name").String())
	case v.Type == gjson.String, v.Type == gjson.Number:
		return RefFromString(v.String())
	default:
		return Reference{}
	}
}

// IsEmpty reports whether the reference carries nothing to resolve.
func (r Reference) IsEmpty() bool {
	return r.Kind == RefNone
}

// Raw is the value reported back in validation errors.
func (r Reference) Raw() string {
	switch r.Kind {
	case RefValue:
		return r.Value
	case RefObject:
		for _, s := range []string{r.ID, r.Code, r.Name} {
			if s != "" {
				return s
			}
		}
	}
	return ""
}

func (r Reference) String() string {
	if r.Kind == RefObject {
		return fmt.Sprintf("{id:%q code:%q name:%q}", r.ID, r.Code, r.Name)
	}
	return r.Raw()
}

// UnmarshalJSON accepts a string, a number, null, or an object.
func (r *Reference) UnmarshalJSON(b []byte) error {
	if !gjson.ValidBytes(b) {
		return fmt.Errorf("invalid reference JSON")
	}
	v := gjson.ParseBytes(b)
	if v.IsArray() || v.IsBool() {
		return fmt.Errorf("reference must be a string or an object, got %s", v.Raw)
	}
	*r = ReferenceFromJSON(v)
	return nil
}

func (r Reference) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case RefValue:
		return json.Marshal(r.Value)
	case RefObject:
		return json.Marshal(struct {
			ID   string `json:"id,omitempty"`
			Code string `json:"code,omitempty"`
			Name string `json:"name,omitempty"`
		}{r.ID, r.Code, r.Name})
	default:
		return []byte("null"), nil
	}
}

// DisplayRef keeps the embedded display fields of a reference for read-only views.
type DisplayRef struct {
	ID   string `json:"id"`
	Code string `json:"code,omitempty"`
	Name string `json:"name,omitempty"`
}
