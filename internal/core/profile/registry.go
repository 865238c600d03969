package profile

import (
	"sort"
	"strings"
	"sync"

	perr "maintnotice/internal/platform/errors"
)

// Info describes a registered name for listings
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	AliasOf     string `json:"alias_of,omitempty"`
}

// Registry maps profile names and sender domains to profiles.
// Reads are safe alongside Register and Apply
type Registry struct {
	mu          sync.RWMutex
	profiles    map[string]Profile
	aliases     map[string]string
	senders     map[string]string
	defaultName string
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{
		profiles: make(map[string]Profile, 8),
		aliases:  make(map[string]string, 4),
		senders:  make(map[string]string, 8),
	}
}

// Register adds or replaces a profile. The first profile registered
// becomes the default until SetDefault says otherwise
func (r *Registry) Register(p Profile) error {
	if p == nil || strings.TrimSpace(p.Name()) == "" {
		return perr.Configurationf("profile: register requires a named profile")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.aliases[p.Name()]; ok {
		return perr.Configurationf("profile: %q is already an alias", p.Name())
	}
	r.profiles[p.Name()] = p
	if r.defaultName == "" {
		r.defaultName = p.Name()
	}
	return nil
}

// Alias makes alias resolve to target
func (r *Registry) Alias(alias, target string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.aliasLocked(alias, target)
}

func (r *Registry) aliasLocked(alias, target string) error {
	if alias == "" || alias == target {
		return perr.Configurationf("profile: invalid alias %q -> %q", alias, target)
	}
	if _, ok := r.profiles[alias]; ok {
		return perr.Configurationf("profile: alias %q shadows a profile", alias)
	}
	if _, ok := r.profiles[target]; !ok {
		return perr.Configurationf("profile: alias %q targets unknown profile %q", alias, target)
	}
	r.aliases[alias] = target
	return nil
}

// MapSender routes a sender domain to a profile name or alias
func (r *Registry) MapSender(domain, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mapSenderLocked(domain, name)
}

func (r *Registry) mapSenderLocked(domain, name string) error {
	d := strings.ToLower(strings.TrimSpace(domain))
	if d == "" {
		return perr.Configurationf("profile: sender domain is required")
	}
	if _, ok := r.lookupLocked(name); !ok {
		return perr.Configurationf("profile: sender %q maps to unknown profile %q", d, name)
	}
	r.senders[d] = name
	return nil
}

// SetDefault chooses the profile used when no sender is given
func (r *Registry) SetDefault(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.lookupLocked(name)
	if !ok {
		return perr.Configurationf("profile: default %q is not registered", name)
	}
	r.defaultName = p.Name()
	return nil
}

func (r *Registry) lookupLocked(name string) (Profile, bool) {
	if t, ok := r.aliases[name]; ok {
		name = t
	}
	p, ok := r.profiles[name]
	return p, ok
}

// Get returns the profile for a name or alias
func (r *Registry) Get(name string) (Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.lookupLocked(name)
	if !ok {
		return nil, perr.WithOp(perr.Configurationf("unknown profile %q", name), "profile.Get")
	}
	return p, nil
}

// Default returns the default profile, or nil for an empty registry
func (r *Registry) Default() Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.profiles[r.defaultName]
}

// DefaultName returns the default profile name
func (r *Registry) DefaultName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaultName
}

// ForSender returns the profile name mapped to a lowercase domain
func (r *Registry) ForSender(domain string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.senders[domain]
	return n, ok
}

// Senders returns a copy of the domain mapping
func (r *Registry) Senders() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(r.senders))
	for k, v := range r.senders {
		out[k] = v
	}
	return out
}

// List describes every profile and alias, sorted by name
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Info, 0, len(r.profiles)+len(r.aliases))
	for n, p := range r.profiles {
		in := Info{Name: n}
		if d, ok := p.(interface{ Description() string }); ok {
			in.Description = d.Description()
		}
		out = append(out, in)
	}
	for a, t := range r.aliases {
		out = append(out, Info{Name: a, AliasOf: t})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Apply compiles a pack and merges it in: profiles are added or replaced,
// then aliases, sender mappings and the default. Nothing changes on error
func (r *Registry) Apply(pk Pack) error {
	compiled := make([]*Pattern, 0, len(pk.Profiles))
	for _, s := range pk.Profiles {
		p, err := Compile(s.Name, string(s.Pattern))
		if err != nil {
			return err
		}
		p.description = s.Description
		compiled = append(compiled, p)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := &Registry{
		profiles:    copyMap(r.profiles),
		aliases:     copyMap(r.aliases),
		senders:     copyMap(r.senders),
		defaultName: r.defaultName,
	}
	for _, p := range compiled {
		delete(next.aliases, p.Name())
		next.profiles[p.Name()] = p
		if next.defaultName == "" {
			next.defaultName = p.Name()
		}
	}
	for _, a := range sortedKeys(pk.Aliases) {
		if err := next.aliasLocked(a, pk.Aliases[a]); err != nil {
			return err
		}
	}
	for _, d := range sortedKeys(pk.Senders) {
		if err := next.mapSenderLocked(d, pk.Senders[d]); err != nil {
			return err
		}
	}
	if pk.Default != "" {
		p, ok := next.lookupLocked(pk.Default)
		if !ok {
			return perr.Configurationf("profile: default %q is not registered", pk.Default)
		}
		next.defaultName = p.Name()
	}

	r.profiles, r.aliases, r.senders, r.defaultName = next.profiles, next.aliases, next.senders, next.defaultName
	return nil
}

func copyMap[V any](in map[string]V) map[string]V {
	out := make(map[string]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}
