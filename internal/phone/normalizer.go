package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Normalized is the canonical identity derived from a raw platform sender id.
// Key is always the bare identifier with the platform suffix stripped; it is
// the ledger identity and never depends on parser output. Display is the
// national rendering of the number when it parses, else equal to Key.
type Normalized struct {
	Key     string
	Display string
}

const defaultRegion = "PK"

type Normalizer struct {
	region string
}

func NewNormalizer(region string) *Normalizer {
	if region == "" {
		region = defaultRegion
	}
	return &Normalizer{region: region}
}

// Normalize strips the platform suffix (e.g. "@c.us", "@s.whatsapp.net")
// and tries to render the remaining digits in the configured region's
// national format. It never fails; unparseable input falls back to the
// bare stripped string for both fields.
func (n *Normalizer) Normalize(rawID string) Normalized {
	key := rawID
	if i := strings.IndexByte(key, '@'); i >= 0 {
		key = key[:i]
	}

	out := Normalized{Key: key, Display: key}

	num, err := phonenumbers.Parse(key, n.region)
	if err != nil {
		return out
	}
	if !phonenumbers.IsValidNumber(num) {
		return out
	}

	out.Display = phonenumbers.Format(num, phonenumbers.NATIONAL)
	return out
}
