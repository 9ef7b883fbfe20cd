package domain

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// GetZoneFromNonApexFqdn drops the leftmost label of an FQDN, returning the
// parent zone candidate. Returns "" if fqdn has no parent (a single label
// plus the root, e.g. "com.").
func GetZoneFromNonApexFqdn(fqdn string) string {
	trimmed := strings.TrimSuffix(fqdn, ".")
	idx := strings.IndexByte(trimmed, '.')
	if idx < 0 {
		return ""
	}
	return trimmed[idx+1:] + "."
}

// Relativize returns the portion of fqdn with the trailing zoneName
// removed. If fqdn equals zoneName, returns "@" (the apex marker). Both
// arguments are expected dot-terminated; Relativize normalizes a missing
// trailing dot on either before comparing.
func Relativize(fqdn, zoneName string) string {
	fqdn = ensureTrailingDot(fqdn)
	zoneName = ensureTrailingDot(zoneName)
	if strings.EqualFold(fqdn, zoneName) {
		return "@"
	}
	if strings.HasSuffix(strings.ToLower(fqdn), strings.ToLower(zoneName)) {
		rel := fqdn[:len(fqdn)-len(zoneName)]
		return strings.TrimSuffix(rel, ".")
	}
	return fqdn
}

// Derelativize is the inverse of Relativize: it appends zoneName to a
// relative name, normalizing the apex marker back to the bare zone name.
// Used by law L4 (relativize/derelativize round-trips modulo trailing-dot
// normalization).
func Derelativize(relativeName, zoneName string) string {
	zoneName = ensureTrailingDot(zoneName)
	if relativeName == "@" || relativeName == "" {
		return zoneName
	}
	return ensureTrailingDot(relativeName) + zoneName
}

func ensureTrailingDot(name string) string {
	if strings.HasSuffix(name, ".") {
		return name
	}
	return name + "."
}

// ValidateIpv4Address reports whether s is a syntactically valid IPv4 literal.
func ValidateIpv4Address(s string) bool {
	ip := net.ParseIP(s)
	return ip != nil && ip.To4() != nil
}

// ValidateIpv6Address reports whether s is a syntactically valid IPv6 literal.
func ValidateIpv6Address(s string) bool {
	ip := net.ParseIP(s)
	return ip != nil && ip.To4() == nil && ip.To16() != nil
}

// GetIPv4NonDelegatedZoneName returns the classful in-addr.arpa name for the
// /24 containing ip, e.g. "1.2.3.4" -> "3.2.1.in-addr.arpa.". This is used
// only as a filter prefix against zone storage, since classless delegation
// zones embed a "/" and cannot be found by exact match (§4.4, §9).
func GetIPv4NonDelegatedZoneName(ip string) string {
	octets := strings.Split(ip, ".")
	if len(octets) != 4 {
		return ""
	}
	return fmt.Sprintf("%s.%s.%s.in-addr.arpa.", octets[2], octets[1], octets[0])
}

// ReverseIPv4RecordName returns the last octet of ip, used as the relative
// record name within whichever in-addr.arpa zone (classful or classless)
// ultimately matches.
func ReverseIPv4RecordName(ip string) string {
	octets := strings.Split(ip, ".")
	if len(octets) != 4 {
		return ""
	}
	return octets[3]
}

// GetIPv6FullReverseName returns the canonical nibble-reversed ip6.arpa name
// for ip, e.g. "2001:db8::1" ->
// "1.0.0.0....0.0.0.0.8.b.d.0.1.0.0.2.ip6.arpa.".
func GetIPv6FullReverseName(ip string) string {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return ""
	}
	ip16 := parsed.To16()
	if ip16 == nil {
		return ""
	}
	const hexDigits = "0123456789abcdef"
	nibbles := make([]byte, 0, 32)
	for i := len(ip16) - 1; i >= 0; i-- {
		b := ip16[i]
		nibbles = append(nibbles, hexDigits[b&0x0f], hexDigits[b>>4])
	}
	var sb strings.Builder
	for _, n := range nibbles {
		sb.WriteByte(n)
		sb.WriteByte('.')
	}
	sb.WriteString("ip6.arpa.")
	return sb.String()
}

// Ipv6ReverseSuffixCandidates computes the candidate zone-name suffix set
// for an IPv6 PTR change: for each CIDR length from 20 to 64 inclusive,
// drop (128-cidr)/4 nibbles from the full reverse name (each nibble is two
// characters in the dotted nibble form: the hex digit and its separating
// dot), then emit the remaining suffix. Bounded to 45 candidates (§9).
func Ipv6ReverseSuffixCandidates(ip string) []string {
	full := GetIPv6FullReverseName(ip)
	if full == "" {
		return nil
	}
	candidates := make([]string, 0, 45)
	seen := make(map[string]bool, 45)
	for cidr := 20; cidr <= 64; cidr++ {
		nibblesToDrop := (128 - cidr) / 4
		charsToDrop := nibblesToDrop * 2
		if charsToDrop < 0 || charsToDrop >= len(full) {
			continue
		}
		suffix := full[charsToDrop:]
		if !seen[suffix] {
			seen[suffix] = true
			candidates = append(candidates, suffix)
		}
	}
	return candidates
}

// ReverseIPv6RecordName returns the nibble-reversed FQDN for ip with the
// given zone's name (and its separating dot) removed, i.e. the relative
// record name within that zone.
func ReverseIPv6RecordName(ip, zoneName string) string {
	full := GetIPv6FullReverseName(ip)
	return Relativize(full, zoneName)
}

// PtrIsInZone reports whether ip is covered by zoneName, honoring RFC
// 2317-style classless delegations of the form "<lo>/<prefix>.x.y.z.in-addr.arpa.".
// A classful zone (no "/") covers ip iff zoneName equals ip's classful
// /24 reverse name exactly. A classless zone additionally restricts
// coverage to the sub-range described by <lo>/<prefix> within that /24.
func PtrIsInZone(ip string, zoneName string) bool {
	classful := GetIPv4NonDelegatedZoneName(ip)
	if classful == "" {
		return false
	}
	if !strings.Contains(zoneName, "/") {
		return strings.EqualFold(zoneName, classful)
	}

	firstLabel, rest, ok := strings.Cut(zoneName, ".")
	if !ok || !strings.EqualFold(rest, classful) {
		return false
	}
	lo, prefix, ok := strings.Cut(firstLabel, "/")
	if !ok {
		return false
	}
	loOctet, errLo := strconv.Atoi(lo)
	prefixBits, errPrefix := strconv.Atoi(prefix)
	if errLo != nil || errPrefix != nil || prefixBits < 24 || prefixBits > 32 {
		return false
	}
	octets := strings.Split(ip, ".")
	if len(octets) != 4 {
		return false
	}
	lastOctet, err := strconv.Atoi(octets[3])
	if err != nil {
		return false
	}
	hostBits := 32 - prefixBits
	size := 1 << uint(hostBits)
	mask := ^(size - 1)
	return (lastOctet & mask) == (loOctet & mask)
}
