package export

import (
	"fmt"

	"github.com/zainokta/spectrum/spec"
)

// insomniaExportVersion is the schema version Insomnia's import dialog
// expects for a v4 workspace export.
const insomniaExportVersion = "4"

// ToInsomnia builds an Insomnia v4 "export" document: a flat resource
// list mixing a workspace, a request group per tag, and a request per
// operation, the shape Insomnia's JSON importer expects. No Go client
// library models this format (Insomnia's own export/import lives in
// its Node/Electron app), so this walks doc directly into the
// map[string]any shape rather than through a typed intermediate.
func ToInsomnia(doc spec.Document) map[string]any {
	workspaceID := "wrk_spectrum"
	resources := []map[string]any{
		{
			"_id":         workspaceID,
			"_type":       "workspace",
			"name":        doc.Info.Title,
			"description": doc.Info.Description,
		},
	}

	groupIDs := make(map[string]string)
	serverURL := ""
	if len(doc.Servers) > 0 {
		serverURL = doc.Servers[0].URL
	}

	seq := 0
	for _, path := range sortedPaths(doc.Paths) {
		item := doc.Paths[path]
		for method, op := range operationsOf(item) {
			if op == nil {
				continue
			}
			seq++

			tag := "untagged"
			if len(op.Tags) > 0 {
				tag = op.Tags[0]
			}
			groupID, ok := groupIDs[tag]
			if !ok {
				groupID = fmt.Sprintf("fld_%s", sanitizeID(tag))
				groupIDs[tag] = groupID
				resources = append(resources, map[string]any{
					"_id":      groupID,
					"_type":    "request_group",
					"parentId": workspaceID,
					"name":     normalizeTag(tag),
				})
			}

			headers := make([]map[string]any, 0)
			for _, param := range op.Parameters {
				if param.In == "header" {
					headers = append(headers, map[string]any{"name": param.Name, "value": ""})
				}
			}

			resources = append(resources, map[string]any{
				"_id":      fmt.Sprintf("req_%d", seq),
				"_type":    "request",
				"parentId": groupID,
				"name":     op.OperationID,
				"method":   method,
				"url":      serverURL + path,
				"headers":  headers,
			})
		}
	}

	return map[string]any{
		"_type":          "export",
		"__export_format": insomniaExportVersion,
		"__export_source": "spectrum",
		"resources":       resources,
	}
}

func sanitizeID(s string) string {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, byte(r))
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
