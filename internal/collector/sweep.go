package collector

// sweep filters the registry in place, keeping entries whose object still
// exists and was marked. It returns how many entries were dropped because
// their object was already gone and how many because it was unmarked.
func (c *Collector) sweep(st *markState) (dead, unmarked int) {
	kept := c.objects[:0]
	for _, ref := range c.objects {
		switch {
		case !c.arena.Resolve(ref):
			dead++
		case st.marked(ref):
			kept = append(kept, ref)
		default:
			unmarked++
		}
	}
	clear(c.objects[len(kept):])
	c.objects = kept

	// Marks are cleared only after filtering: a doubly registered object is
	// checked twice, and unregistered relay objects carry marks as well.
	st.reset()

	return dead, unmarked
}
