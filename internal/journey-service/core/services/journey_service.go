package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"bus-track/internal/config"
	"bus-track/internal/journey-service/core/domain/dto"
	"bus-track/internal/journey-service/core/domain/model"
	"bus-track/internal/journey-service/core/geo"
	"bus-track/internal/journey-service/core/myerrors"
	"bus-track/internal/journey-service/core/ports/driven"
	"bus-track/internal/metrics"
	"bus-track/internal/mylogger"
)

type JourneyService struct {
	log       mylogger.Logger
	tracks    driven.ITrackStore
	profiles  driven.IProfileStore
	cache     driven.IJourneyCache
	geocoder  driven.IGeocoder
	collector *metrics.Collector

	matcher  *Matcher
	searcher *Searcher

	searchCfg *config.Searchconfig
	geoCfg    *config.Geocoderconfig

	now func() time.Time
}

func NewJourneyService(
	log mylogger.Logger,
	searchCfg *config.Searchconfig,
	geoCfg *config.Geocoderconfig,
	tracks driven.ITrackStore,
	profiles driven.IProfileStore,
	cache driven.IJourneyCache,
	geocoder driven.IGeocoder,
	collector *metrics.Collector,
) *JourneyService {
	return &JourneyService{
		log:       log,
		tracks:    tracks,
		profiles:  profiles,
		cache:     cache,
		geocoder:  geocoder,
		collector: collector,
		matcher:   NewMatcher(searchCfg.NearThresholdMeters),
		searcher: NewSearcher(
			searchCfg.NearThresholdMeters,
			searchCfg.TransferThresholdMeters,
			searchCfg.MaxQueuedStates,
			searchCfg.MaxHops,
		),
		searchCfg: searchCfg,
		geoCfg:    geoCfg,
		now:       time.Now,
	}
}

// FindJourney answers "what bus gets me from origin to destination": cache,
// then direct match, then multi-hop search.
func (js *JourneyService) FindJourney(ctx context.Context, origin, destination model.Coordinate) (dto.JourneyResponseDto, error) {
	started := time.Now()
	defer func() {
		js.collector.SearchDuration.Observe(time.Since(started).Seconds())
	}()

	if !geo.Valid(origin) || !geo.Valid(destination) {
		return dto.JourneyResponseDto{}, myerrors.ErrInvalidCoordinates
	}

	key := cacheKey(origin, destination)
	if raw, ok := js.cache.Get(key); ok {
		var cached dto.JourneyResponseDto
		if err := json.Unmarshal(raw, &cached); err == nil {
			js.collector.CacheHits.Inc()
			return cached, nil
		}
		js.log.Warn("dropping unreadable cache entry", "key", key)
	}
	js.collector.CacheMisses.Inc()

	ctx, cancel := context.WithTimeout(ctx, js.searchCfg.RequestTimeout)
	defer cancel()

	tracks, err := js.tracks.GetAllTracks(ctx)
	if err != nil {
		js.collector.Searches.WithLabelValues("error").Inc()
		return dto.JourneyResponseDto{}, fmt.Errorf("load tracks: %w", err)
	}

	if matches := js.matcher.FindDirect(origin, destination, tracks); len(matches) > 0 {
		chosen := matches[0]
		var chosenTrack model.VehicleTrack
		for _, t := range tracks {
			if t.DeviceID == chosen {
				chosenTrack = t
				break
			}
		}
		path := js.matcher.DirectPath(origin, destination, chosenTrack)

		res, err := js.assemble(ctx, "direct", []string{chosen}, path)
		if err != nil {
			js.collector.Searches.WithLabelValues("error").Inc()
			return dto.JourneyResponseDto{}, err
		}
		js.collector.Searches.WithLabelValues("direct").Inc()
		return res, nil
	}

	idx := BuildStopIndex(tracks)
	result, stats, err := js.searcher.Search(ctx, origin, destination, tracks, idx)
	js.collector.QueuedStatesPeak.Observe(float64(stats.Enqueued))
	if err != nil {
		// Deadline hit mid-search. The space was not fully explored but the
		// request budget is spent, so the rider gets "no route".
		js.log.Warn("multi-hop search aborted", "reason", err.Error(), "enqueued", stats.Enqueued)
		js.collector.Searches.WithLabelValues("not_found").Inc()
		return dto.JourneyResponseDto{}, myerrors.ErrNoRouteFound
	}
	if !stats.Found {
		js.collector.Searches.WithLabelValues("not_found").Inc()
		return dto.JourneyResponseDto{}, myerrors.ErrNoRouteFound
	}

	res, err := js.assemble(ctx, "multi-hop", result.VehiclesUsed, result.Path)
	if err != nil {
		js.collector.Searches.WithLabelValues("error").Inc()
		return dto.JourneyResponseDto{}, err
	}

	// Only full multi-hop successes are cached; direct matches are cheap to
	// recompute.
	if payload, err := json.Marshal(res); err == nil {
		js.cache.SetWithTTL(key, payload, js.searchCfg.CacheTTL)
	}
	js.collector.Searches.WithLabelValues("multi_hop").Inc()
	return res, nil
}

func (js *JourneyService) CalculateFare(ctx context.Context, deviceID string, origin, destination model.Coordinate) (dto.FareResponseDto, error) {
	if !geo.Valid(origin) || !geo.Valid(destination) {
		return dto.FareResponseDto{}, myerrors.ErrInvalidCoordinates
	}

	track, err := js.tracks.GetTrack(ctx, deviceID)
	if err != nil {
		return dto.FareResponseDto{}, err
	}
	profile, err := js.profiles.GetProfile(ctx, deviceID)
	if err != nil {
		return dto.FareResponseDto{}, err
	}

	return CalculateFare(track, profile, origin, destination)
}

// assemble turns a raw path plus ordered vehicle ids into the wire response:
// profile lookups, staggered schedule suggestions, geocoded waypoints.
func (js *JourneyService) assemble(ctx context.Context, kind string, vehiclesUsed []string, path []model.Coordinate) (dto.JourneyResponseDto, error) {
	unique := dedupeOrdered(vehiclesUsed)

	profiles, err := js.profiles.GetProfiles(ctx, unique)
	if err != nil {
		return dto.JourneyResponseDto{}, fmt.Errorf("load profiles: %w", err)
	}

	cursor := js.now()
	buses := make([]dto.MatchedBusDto, 0, len(unique))
	for _, id := range unique {
		bus := dto.MatchedBusDto{DeviceID: id}
		p, ok := profiles[id]
		if ok {
			bus.Name = p.Name
			bus.From = p.From
			bus.To = p.To
			bus.TicketPrice = p.TicketPrice

			var slot *model.TimeSlot
			slot, cursor = NextSlot(p.TimeSlots, cursor)
			if slot != nil {
				bus.NextSlot = &dto.TimeSlotDto{StartTime: slot.StartTime, EndTime: slot.EndTime}
			}
		}
		buses = append(buses, bus)
	}

	coords := make([]dto.CoordinateDto, len(path))
	for i, c := range path {
		coords[i] = dto.CoordinateDto{Latitude: c.Latitude, Longitude: c.Longitude}
	}

	return dto.JourneyResponseDto{
		Type:            kind,
		BusesUsed:       buses,
		PathCoordinates: coords,
		PathAddresses:   js.geocodeAll(ctx, path),
	}, nil
}

// geocodeAll fans waypoint lookups out over a bounded worker pool, keeping
// output order by index. A slow or failing geocoder degrades to the
// placeholder for the affected waypoint only.
func (js *JourneyService) geocodeAll(ctx context.Context, path []model.Coordinate) []dto.PathAddressDto {
	out := make([]dto.PathAddressDto, len(path))
	workers := js.geoCfg.Workers
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				callCtx, cancel := context.WithTimeout(ctx, js.geoCfg.Timeout)
				addr, err := js.geocoder.ReverseGeocode(callCtx, path[i])
				cancel()
				if err != nil || addr == "" {
					js.collector.GeocodeFailures.Inc()
					addr = js.geoCfg.Placeholder
				}
				out[i] = dto.PathAddressDto{
					Coordinates: dto.CoordinateDto{Latitude: path[i].Latitude, Longitude: path[i].Longitude},
					Address:     addr,
				}
			}
		}()
	}
	for i := range path {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return out
}

// cacheKey rounds each coordinate to 4 decimal places (~11 m) so nearby
// requests share an entry.
func cacheKey(origin, destination model.Coordinate) string {
	return fmt.Sprintf("%.4f_%.4f_%.4f_%.4f",
		origin.Latitude, origin.Longitude,
		destination.Latitude, destination.Longitude,
	)
}

func dedupeOrdered(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	var out []string
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
