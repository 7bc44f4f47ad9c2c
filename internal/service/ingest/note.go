package ingest

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

const (
	noteTitle  = "Webhook submission"
	noteSource = "webhook"
)

// hasNoteContext reports whether the submission carries anything worth a
// note on a newly created lead.
func hasNoteContext(p Payload) bool {
	return p.Origin != nil || len(p.Metadata) > 0
}

// composeNote renders the synthetic note body: the source, the origin if
// any, then the metadata keys in sorted order.
func composeNote(p Payload) string {
	var b strings.Builder
	b.WriteString("Source: " + noteSource)

	if p.Origin != nil {
		b.WriteString("\nOrigin: " + *p.Origin)
	}

	if len(p.Metadata) > 0 {
		keys := make([]string, 0, len(p.Metadata))
		for k := range p.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteString("\nMetadata:")
		for _, k := range keys {
			fmt.Fprintf(&b, "\n- %s: %s", k, metadataValue(p.Metadata[k]))
		}
	}

	return b.String()
}

func metadataValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	encoded, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(encoded)
}
