package services

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/vinyldns/batchcore/internal/core/domain"
	"github.com/vinyldns/batchcore/internal/core/ports"
)

// DiscoverZones maps each still-valid position to its authoritative zone
// (C4). Positions already Invalid from C3 pass through unchanged (L1, L3:
// discovery is a pure function of (ChangeInput, ExistingZones) and never
// aborts the batch for one position's failure).
func DiscoverZones(
	ctx context.Context,
	repo ports.ZoneRepository,
	batch domain.ValidatedBatch[domain.ChangeInput],
) (domain.ValidatedBatch[domain.ChangeForValidation], domain.ExistingZones, error) {
	names, filters := candidateNamesAndFilters(batch)

	zones, err := fetchZonesConcurrently(ctx, repo, names, filters)
	if err != nil {
		return domain.ValidatedBatch[domain.ChangeForValidation]{}, domain.ExistingZones{}, err
	}
	existingZones := domain.NewExistingZones(zones)

	out := domain.MapIndexed(batch, func(_ int, r domain.ChangeResult[domain.ChangeInput]) domain.ChangeResult[domain.ChangeForValidation] {
		if !r.IsValid() {
			return domain.Invalid[domain.ChangeForValidation](r.Errors()...)
		}
		cfv, discoverErr := resolveZoneForChange(r.Value(), existingZones)
		if discoverErr != nil {
			return domain.Invalid[domain.ChangeForValidation](discoverErr)
		}
		return domain.Valid(cfv)
	})

	return out, existingZones, nil
}

// candidateNamesAndFilters computes the exact-name candidate set (non-PTR
// apex/parent names, and IPv6 PTR nibble-suffix candidates) and the
// filter-substring candidate set (IPv4 PTR classful names), scanning only
// the positions still valid after C3.
func candidateNamesAndFilters(batch domain.ValidatedBatch[domain.ChangeInput]) (map[string]struct{}, map[string]struct{}) {
	names := make(map[string]struct{})
	filters := make(map[string]struct{})

	for _, r := range batch.Results {
		if !r.IsValid() {
			continue
		}
		c := r.Value()
		switch {
		case c.Type == domain.TypePTR && domain.ValidateIpv4Address(c.InputName):
			if f := domain.GetIPv4NonDelegatedZoneName(c.InputName); f != "" {
				filters[f] = struct{}{}
			}
		case c.Type == domain.TypePTR && domain.ValidateIpv6Address(c.InputName):
			for _, suffix := range domain.Ipv6ReverseSuffixCandidates(c.InputName) {
				names[suffix] = struct{}{}
			}
		default:
			fqdn := ensureDot(c.InputName)
			names[fqdn] = struct{}{}
			if parent := domain.GetZoneFromNonApexFqdn(fqdn); parent != "" {
				names[parent] = struct{}{}
			}
		}
	}
	return names, filters
}

func ensureDot(name string) string {
	if strings.HasSuffix(name, ".") {
		return name
	}
	return name + "."
}

// fetchZonesConcurrently issues the exact-name and filter lookups in
// parallel (§5 parallelism point a) and joins their results commutatively.
// Either call suspending on ctx cancellation aborts both (§5 Cancellation):
// the first error observed is returned once both goroutines have finished.
func fetchZonesConcurrently(
	ctx context.Context,
	repo ports.ZoneRepository,
	names map[string]struct{},
	filters map[string]struct{},
) ([]domain.Zone, error) {
	var (
		wg          sync.WaitGroup
		mu          sync.Mutex
		zones       []domain.Zone
		firstErr    error
	)

	recordErr := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}
	appendZones := func(zs []domain.Zone) {
		mu.Lock()
		defer mu.Unlock()
		zones = append(zones, zs...)
	}

	if len(names) > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			zs, err := repo.GetZonesByNames(ctx, names)
			if err != nil {
				recordErr(err)
				return
			}
			appendZones(zs)
		}()
	}
	if len(filters) > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			zs, err := repo.GetZonesByFilters(ctx, filters)
			if err != nil {
				recordErr(err)
				return
			}
			appendZones(zs)
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return zones, nil
}

func resolveZoneForChange(c domain.ChangeInput, existing domain.ExistingZones) (domain.ChangeForValidation, domain.SingleChangeError) {
	switch {
	case c.Type == domain.TypePTR && domain.ValidateIpv4Address(c.InputName):
		return resolveIpv4Ptr(c, existing)
	case c.Type == domain.TypePTR && domain.ValidateIpv6Address(c.InputName):
		return resolveIpv6Ptr(c, existing)
	case c.Type == domain.TypeCNAME:
		return resolveCname(c, existing)
	default:
		return resolveStandard(c, existing)
	}
}

func resolveStandard(c domain.ChangeInput, existing domain.ExistingZones) (domain.ChangeForValidation, domain.SingleChangeError) {
	fqdn := ensureDot(c.InputName)
	if zone, ok := existing.GetByName(fqdn); ok {
		return domain.ChangeForValidation{Input: c, Zone: zone, RelativeName: "@"}, nil
	}
	parent := domain.GetZoneFromNonApexFqdn(fqdn)
	if parent != "" {
		if zone, ok := existing.GetByName(parent); ok {
			return domain.ChangeForValidation{Input: c, Zone: zone, RelativeName: domain.Relativize(fqdn, zone.Name)}, nil
		}
	}
	return domain.ChangeForValidation{}, domain.ZoneDiscoveryError(fqdn)
}

func resolveCname(c domain.ChangeInput, existing domain.ExistingZones) (domain.ChangeForValidation, domain.SingleChangeError) {
	fqdn := ensureDot(c.InputName)
	if zone, ok := existing.GetByName(fqdn); ok {
		// A CNAME at the apex would collide with the mandatory SOA/NS record
		// set there; reject outright rather than attempting the add.
		return domain.ChangeForValidation{}, domain.RecordAlreadyExists(zone.Name)
	}
	parent := domain.GetZoneFromNonApexFqdn(fqdn)
	if parent == "" {
		return domain.ChangeForValidation{}, domain.ZoneDiscoveryError(fqdn)
	}
	zone, ok := existing.GetByName(parent)
	if !ok {
		return domain.ChangeForValidation{}, domain.ZoneDiscoveryError(fqdn)
	}
	return domain.ChangeForValidation{Input: c, Zone: zone, RelativeName: domain.Relativize(fqdn, zone.Name)}, nil
}

func resolveIpv4Ptr(c domain.ChangeInput, existing domain.ExistingZones) (domain.ChangeForValidation, domain.SingleChangeError) {
	matches := existing.GetIpv4PtrMatches(c.InputName)
	if len(matches) == 0 {
		return domain.ChangeForValidation{}, domain.ZoneDiscoveryError(c.InputName)
	}
	zone := pickMostSpecificIpv4Zone(matches)
	return domain.ChangeForValidation{
		Input:        c,
		Zone:         zone,
		RelativeName: domain.ReverseIPv4RecordName(c.InputName),
	}, nil
}

// pickMostSpecificIpv4Zone implements the classless-delegation preference
// from §4.4/§9: when more than one zone matches, prefer a classless
// delegation (name containing "/") over the classful parent; when several
// classless delegations could overlap, prefer the longest zone name for a
// deterministic, most-specific choice (the Open Question's resolution).
func pickMostSpecificIpv4Zone(matches []domain.Zone) domain.Zone {
	if len(matches) == 1 {
		return matches[0]
	}
	sorted := make([]domain.Zone, len(matches))
	copy(sorted, matches)
	sort.Slice(sorted, func(i, j int) bool {
		iClassless := strings.Contains(sorted[i].Name, "/")
		jClassless := strings.Contains(sorted[j].Name, "/")
		if iClassless != jClassless {
			return iClassless // classless sorts first
		}
		return len(sorted[i].Name) > len(sorted[j].Name) // longer (more specific) sorts first
	})
	return sorted[0]
}

func resolveIpv6Ptr(c domain.ChangeInput, existing domain.ExistingZones) (domain.ChangeForValidation, domain.SingleChangeError) {
	matches := existing.GetIpv6PtrMatches(c.InputName)
	if len(matches) == 0 {
		return domain.ChangeForValidation{}, domain.ZoneDiscoveryError(c.InputName)
	}
	zone := matches[0]
	for _, m := range matches[1:] {
		if len(m.Name) > len(zone.Name) {
			zone = m
		}
	}
	return domain.ChangeForValidation{
		Input:        c,
		Zone:         zone,
		RelativeName: domain.ReverseIPv6RecordName(c.InputName, zone.Name),
	}, nil
}
