package resolver

// SetLookupEnv replaces the environment lookup used for NODE_ENV.
func (r *Resolver) SetLookupEnv(fn func(string) (string, bool)) {
	r.lookupEnv = fn
}
