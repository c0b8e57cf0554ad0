package arbiter

// History is a chronological log of timestamps in whole seconds.
// Entries are only ever added at the tail with values >= the current tail,
// and only ever dropped from the head by Trim.
type History []int64

// Append returns h with t added at the tail.
func (h History) Append(t int64) History {
	return append(h, t)
}

// Trim returns the suffix of h whose entries are all strictly greater than
// minExclusive. The receiver is left untouched; callers store the result.
//
// Ordering guarantees that the first entry past the cutoff starts a
// contiguous valid suffix, so a forward scan is enough.
func (h History) Trim(minExclusive int64) History {
	for i, t := range h {
		if t > minExclusive {
			return h[i:]
		}
	}
	return nil
}

// Len returns the number of retained entries.
func (h History) Len() int { return len(h) }
