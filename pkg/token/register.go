package token

import (
	"fmt"
	"strings"
	"sync"
)

// aliases maps lowercase foreign kind names to kinds.
// Tokenizers other than ours name their kinds differently ("OtherNode",
// "WhiteSpace", ...); aliases let their streams load unchanged.
var (
	aliasMu sync.RWMutex
	aliases = make(map[string]Kind)
)

// RegisterAlias registers name as an alternative spelling of k.
// Registering the same alias twice with the same kind is a no-op.
func RegisterAlias(name string, k Kind) error {
	if !k.IsValid() {
		return fmt.Errorf("cannot alias %q to invalid kind %s", name, k)
	}
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return fmt.Errorf("alias name is empty")
	}

	aliasMu.Lock()
	defer aliasMu.Unlock()

	if existing, ok := aliases[key]; ok && existing != k {
		return fmt.Errorf("alias %q already registered for %s", name, existing)
	}
	aliases[key] = k
	return nil
}

// RegisterAliases registers every alias → kind-name pair in m.
func RegisterAliases(m map[string]string) error {
	for alias, kindName := range m {
		k, ok := LookupKind(kindName)
		if !ok {
			return fmt.Errorf("alias %q: unknown token kind %q", alias, kindName)
		}
		if err := RegisterAlias(alias, k); err != nil {
			return err
		}
	}
	return nil
}

func lookupAlias(name string) (Kind, bool) {
	aliasMu.RLock()
	defer aliasMu.RUnlock()
	k, ok := aliases[strings.ToLower(strings.TrimSpace(name))]
	return k, ok
}

// RegisteredAliases returns a copy of all registered aliases.
func RegisteredAliases() map[string]Kind {
	aliasMu.RLock()
	defer aliasMu.RUnlock()
	result := make(map[string]Kind, len(aliases))
	for k, v := range aliases {
		result[k] = v
	}
	return result
}
