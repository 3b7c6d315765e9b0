package ssr

import (
	"encoding/json"
)

// HydrationState merges the fetched query results into the client-cache
// snapshot embedded as window.__APOLLO_STATE__. encoding/json escapes every
// literal "<" to \u003c, so the serialized state can never terminate the
// surrounding script tag early.
func HydrationState(results map[string]json.RawMessage) ([]byte, error) {
	root := make(map[string]json.RawMessage)
	for _, data := range results {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(data, &fields); err != nil {
			return nil, err
		}
		for k, v := range fields {
			root[k] = v
		}
	}

	return json.Marshal(map[string]any{"ROOT_QUERY": root})
}
