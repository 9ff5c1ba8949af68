package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

const namespace = "go-sections"

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must prefix keys by kind so ids for different entities never collide.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// ModuleUUID identifies a page module by its _type and _key.
func ModuleUUID(moduleType, moduleKey string) uuid.UUID {
	return UUID(namespace + ":module:" + strings.TrimSpace(moduleType) + ":" + strings.TrimSpace(moduleKey))
}

// AccordionItemUUID identifies an accordion item within its module.
func AccordionItemUUID(moduleKey, itemKey string) uuid.UUID {
	return UUID(namespace + ":accordion_item:" + strings.TrimSpace(moduleKey) + ":" + strings.TrimSpace(itemKey))
}

// DOMID formats an id as an HTML id attribute value. The prefix keeps the
// value starting with a letter.
func DOMID(prefix string, id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "s"
	}
	return prefix + "-" + id.String()
}
