package domain

import "strings"

// ExistingZones is a point-in-time, read-through snapshot of zones relevant
// to one batch-change intake call. Its lifetime is the intake call: it is
// never cached or shared across requests (§5 Shared resources).
type ExistingZones struct {
	byName map[string]Zone // keyed by lower-cased, dot-terminated name
	all    []Zone
}

// NewExistingZones builds a snapshot from a flat zone list, deduplicating by
// name (later entries win, though callers should never supply duplicates).
func NewExistingZones(zones []Zone) ExistingZones {
	byName := make(map[string]Zone, len(zones))
	for _, z := range zones {
		byName[strings.ToLower(ensureTrailingDot(z.Name))] = z
	}
	return ExistingZones{byName: byName, all: zones}
}

// GetByName returns the zone with an exact (case-insensitive) name match.
func (e ExistingZones) GetByName(name string) (Zone, bool) {
	z, ok := e.byName[strings.ToLower(ensureTrailingDot(name))]
	return z, ok
}

// GetIpv4PtrMatches returns every known zone that covers ip under IPv4 PTR
// classful/classless rules (§4.4). Determinism when multiple classless
// delegations could overlap is resolved by the caller (zone discovery)
// preferring the longest matching name, per the Open Question in §9.
func (e ExistingZones) GetIpv4PtrMatches(ip string) []Zone {
	var matches []Zone
	for _, z := range e.all {
		if PtrIsInZone(ip, z.Name) {
			matches = append(matches, z)
		}
	}
	return matches
}

// GetIpv6PtrMatches returns every known zone whose name is a suffix of ip's
// full nibble-reversed reverse name, i.e. every zone that could possibly be
// authoritative for this PTR record at some delegation depth. Zone
// discovery picks the longest (most specific) match.
func (e ExistingZones) GetIpv6PtrMatches(ip string) []Zone {
	full := GetIPv6FullReverseName(ip)
	if full == "" {
		return nil
	}
	var matches []Zone
	lowerFull := strings.ToLower(full)
	for _, z := range e.all {
		zn := strings.ToLower(ensureTrailingDot(z.Name))
		if strings.HasSuffix(lowerFull, zn) {
			matches = append(matches, z)
		}
	}
	return matches
}

// recordSetKey identifies a record set independent of type, matching the
// (zoneId, relativeName) granularity that contextual validation fetches at.
type recordSetKey struct {
	zoneID string
	name   string
}

// ExistingRecordSets is a point-in-time snapshot of the record sets at every
// (zoneId, relativeName) pair touched by a batch, produced by C5's
// deduplicated, parallel fetch.
type ExistingRecordSets struct {
	byZoneAndName map[recordSetKey][]RecordSet
}

// NewExistingRecordSets flattens per-(zone,name) fetch results into one
// snapshot.
func NewExistingRecordSets(entries map[[2]string][]RecordSet) ExistingRecordSets {
	byZoneAndName := make(map[recordSetKey][]RecordSet, len(entries))
	for k, v := range entries {
		byZoneAndName[recordSetKey{zoneID: k[0], name: strings.ToLower(k[1])}] = v
	}
	return ExistingRecordSets{byZoneAndName: byZoneAndName}
}

// GetRecordSetsByName returns every existing record set at (zoneID, relativeName).
func (e ExistingRecordSets) GetRecordSetsByName(zoneID, relativeName string) []RecordSet {
	return e.byZoneAndName[recordSetKey{zoneID: zoneID, name: strings.ToLower(relativeName)}]
}

// GetRecordSetMatch returns the record set of the given type at
// (zoneID, relativeName), if any.
func (e ExistingRecordSets) GetRecordSetMatch(zoneID, relativeName string, rtype RecordType) (RecordSet, bool) {
	for _, rs := range e.GetRecordSetsByName(zoneID, relativeName) {
		if rs.Type == rtype {
			return rs, true
		}
	}
	return RecordSet{}, false
}
