package analyzer

import (
	"mime/multipart"
	"reflect"
	"testing"
)

func TestGenerateSchemaFromTypeFileUpload(t *testing.T) {
	type AvatarUpload struct {
		Caption string                `json:"caption"`
		Avatar  *multipart.FileHeader `json:"avatar"`
	}

	sg := NewSchemaGenerator()
	schema := sg.GenerateSchemaFromType(reflect.TypeOf(AvatarUpload{}))

	avatar, ok := schema.Properties["avatar"]
	if !ok {
		t.Fatalf("expected an avatar property, got %v", schema.Properties)
	}
	if avatar.Type != "string" || avatar.Format != "binary" {
		t.Errorf("avatar schema = %+v, want {Type: string, Format: binary}", avatar)
	}
}
