package ecoute

import (
	"strconv"
)

// shortIDSeed is the fixed non-zero seed of the rolling hash (djb2).
const shortIDSeed uint32 = 5381

// maxShortIDProbes caps collision probing. At expected corpus sizes
// (hundreds to low thousands of URLs) more than one or two probes is
// already rare; hitting the cap indicates pathological input.
const maxShortIDProbes = 1 << 16

// GenerateShortID derives a deterministic base-36 short ID from a source
// URL. The collision-breaking suffix is mixed into the hashed bytes, not
// appended to the output: suffix 0 hashes the URL alone, suffix n > 0
// hashes url + "#" + n. Output is 1-8 lowercase base-36 characters with
// no fixed width.
func GenerateShortID(url string, suffix int) string {
	input := url
	if suffix > 0 {
		input = url + "#" + strconv.Itoa(suffix)
	}
	h := shortIDSeed
	for i := 0; i < len(input); i++ {
		h = h*33 ^ uint32(input[i])
	}
	return strconv.FormatUint(uint64(h), 36)
}

// ResolveShortID finds or creates the short ID for a source URL against an
// explicit identity map of assigned id → url pairs. If the URL already has
// an ID the existing one is returned and the map is left untouched.
// Otherwise suffixes are probed from 0 until a free ID is found; the new
// pair is inserted into assigned.
//
// The map is owned by the caller and is not safe for concurrent mutation;
// crawls are single-writer by design.
func ResolveShortID(url string, assigned map[string]string) (string, error) {
	for id, existing := range assigned {
		if existing == url {
			return id, nil
		}
	}

	for suffix := 0; suffix < maxShortIDProbes; suffix++ {
		id := GenerateShortID(url, suffix)
		if taken, ok := assigned[id]; ok && taken != url {
			continue
		}
		assigned[id] = url
		return id, nil
	}

	return "", Errorf(EINTERNAL, "short ID space exhausted for %q", url)
}
