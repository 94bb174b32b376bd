// Package export converts a generated spec.Document into formats other
// API tools consume directly: a Postman collection (grounded on
// falcon's use of github.com/rbretecher/go-postman-collection to parse
// the same format) and a minimal Insomnia v4 export.
package export

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	postman "github.com/rbretecher/go-postman-collection"

	"github.com/zainokta/spectrum/spec"
)

// ToPostman builds a Postman v2.1 collection from doc, grouping
// requests into folders by their first tag (falling back to
// "untagged") the way Laravel Spectrum's own Postman exporter mirrors
// the generated document's tag structure.
func ToPostman(doc spec.Document) (*postman.Collection, error) {
	collection := postman.CreateCollection(doc.Info.Title, doc.Info.Description)

	folders := make(map[string]*postman.Items)

	serverURL := ""
	if len(doc.Servers) > 0 {
		serverURL = doc.Servers[0].URL
	}

	for _, path := range sortedPaths(doc.Paths) {
		item := doc.Paths[path]
		for method, op := range operationsOf(item) {
			if op == nil {
				continue
			}
			folderName := "untagged"
			if len(op.Tags) > 0 {
				folderName = op.Tags[0]
			}

			folder, ok := folders[folderName]
			if !ok {
				folder = collection.AddItemGroup(normalizeTag(folderName))
				folders[folderName] = folder
			}

			req := &postman.Request{
				URL:    &postman.URL{Raw: serverURL + path},
				Method: postman.Method(method),
			}
			for _, param := range op.Parameters {
				if param.In != "header" {
					continue
				}
				req.Header = append(req.Header, &postman.Header{
					Key:   param.Name,
					Value: "",
				})
			}

			summary := op.Summary
			if summary == "" {
				summary = fmt.Sprintf("%s %s", method, path)
			}
			folder.AddItem(postman.CreateItem(postman.Item{
				Name:        summary,
				Description: op.Description,
				Request:     req,
			}))
		}
	}

	return collection, nil
}

// WritePostman serializes collection as Postman v2.1 JSON.
func WritePostman(collection *postman.Collection) ([]byte, error) {
	var buf bytes.Buffer
	if err := collection.Write(&buf, postman.V210); err != nil {
		return nil, fmt.Errorf("failed to serialize postman collection: %w", err)
	}
	return buf.Bytes(), nil
}

func sortedPaths(paths map[string]spec.PathItem) []string {
	out := make([]string, 0, len(paths))
	for p := range paths {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func operationsOf(item spec.PathItem) map[string]*spec.Operation {
	return map[string]*spec.Operation{
		"GET":     item.Get,
		"PUT":     item.Put,
		"POST":    item.Post,
		"DELETE":  item.Delete,
		"OPTIONS": item.Options,
		"HEAD":    item.Head,
		"PATCH":   item.Patch,
		"TRACE":   item.Trace,
	}
}

// normalizeTag converts a tag such as "multi-factor-auth" into a
// human-readable Postman folder name ("Multi Factor Auth").
func normalizeTag(tag string) string {
	words := strings.Split(tag, "-")
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
