package dto

import (
	"slices"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
)

// requestTypes names every request body the API accepts.
var requestTypes = map[string]any{
	"issue_infraction":  &IssueInfractionRequest{},
	"issue_pardon":      &IssuePardonRequest{},
	"set_hidden":        &SetHiddenRequest{},
	"pardon_case":       &PardonCaseRequest{},
	"update_expiration": &UpdateExpirationRequest{},
	"set_log_channel":   &SetLogChannelRequest{},
}

// RequestSchema returns the JSON schema of the named request body.
func RequestSchema(name string) (*jsonschema.Schema, bool) {
	v, ok := requestTypes[name]
	if !ok {
		return nil, false
	}
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	return reflector.Reflect(v), true
}

func RequestSchemaNames() []string {
	names := lo.Keys(requestTypes)
	slices.Sort(names)
	return names
}
