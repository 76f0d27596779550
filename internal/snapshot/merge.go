package snapshot

// ReplaceRecursive merges src into dst in place.
//
// For every key of src: when both dst and src hold arrays under that key the
// merge recurses, otherwise the src value replaces the dst value. Keys only
// present in dst are left untouched; keys only present in src are appended.
// Values copied from src are deep copies, so later changes to src do not leak
// into dst.
func ReplaceRecursive(dst, src *Array) {
	for _, k := range src.keys {
		sv := src.values[k]

		if srcArr, ok := sv.(*Array); ok {
			if dv, exists := dst.values[k]; exists {
				if dstArr, ok := dv.(*Array); ok {
					ReplaceRecursive(dstArr, srcArr)
					continue
				}
			}
		}

		dst.Set(k, cloneValue(sv))
	}
}
