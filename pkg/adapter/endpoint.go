package adapter

import (
	"net/url"
	"strconv"
	"strings"
)

// Params holds the parameters of one call. Multi-valued names (e.g. "names[]") are allowed.
type Params = url.Values

// Endpoint describes one upstream operation. Descriptors are static and shared.
type Endpoint struct {
	Name     string
	Method   string
	Path     string // may contain {name} placeholders filled from Params
	Required []string
	Optional []string
	// Integers lists parameters that must parse as base-10 integers when present
	Integers []string
	// Args maps upstream parameter names to the tool argument they come from, for error messages
	Args map[string]string
}

// Validate checks that every required parameter has a non-empty value and that integer parameters parse
func (e Endpoint) Validate(params Params) error {
	for _, name := range e.Required {
		if strings.TrimSpace(params.Get(name)) == "" {
			return &InvalidArgumentError{Param: e.argName(name)}
		}
	}
	for _, name := range e.Integers {
		value := params.Get(name)
		if value == "" {
			continue
		}
		if _, err := strconv.ParseInt(value, 10, 64); err != nil {
			return &InvalidArgumentError{Param: e.argName(name), Reason: "must be an integer"}
		}
	}
	return nil
}

// Expand fills the path placeholders and returns the path with the leftover query parameters.
// Parameters not declared by the endpoint are dropped.
func (e Endpoint) Expand(params Params) (string, url.Values) {
	path := e.Path
	query := url.Values{}

	for _, name := range e.declared() {
		values, ok := params[name]
		if !ok || len(values) == 0 {
			continue
		}
		placeholder := "{" + name + "}"
		if strings.Contains(path, placeholder) {
			path = strings.ReplaceAll(path, placeholder, url.PathEscape(values[0]))
			continue
		}
		for _, v := range values {
			query.Add(name, v)
		}
	}

	return path, query
}

func (e Endpoint) declared() []string {
	names := make([]string, 0, len(e.Required)+len(e.Optional))
	names = append(names, e.Required...)
	names = append(names, e.Optional...)
	return names
}

func (e Endpoint) argName(param string) string {
	if arg, ok := e.Args[param]; ok {
		return arg
	}
	return param
}
