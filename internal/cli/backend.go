package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/raphaelgruber/pinroute/internal/app"
	"github.com/raphaelgruber/pinroute/internal/client"
	"github.com/raphaelgruber/pinroute/internal/models"
	"github.com/raphaelgruber/pinroute/internal/service"
	"github.com/samber/lo"
)

// backend is what the query commands need. *client.Client satisfies it
// directly; localBackend adapts in-process services to the same shapes.
type backend interface {
	Validate(ctx context.Context, in client.ValidateInput) (*client.Validation, error)
	Search(ctx context.Context, query string) ([]client.Address, error)
	Route(ctx context.Context, sourceDistrict, destinationDistrict string) (*client.RouteResult, error)
	Hubs(ctx context.Context) ([]client.Hub, error)
}

type localBackend struct {
	app *app.App
}

func toClientAddress(l models.Locality) client.Address {
	return client.Address{
		OfficeName: l.OfficeName,
		Pincode:    l.Pincode,
		District:   l.District,
		State:      l.State,
		OfficeType: string(l.OfficeType),
	}
}

func (b localBackend) Validate(ctx context.Context, in client.ValidateInput) (*client.Validation, error) {
	v, err := b.app.Addresses.Validate(ctx, service.ValidateRequest{
		Address:  in.Address,
		Pincode:  in.Pincode,
		District: in.District,
	})
	if err != nil {
		return nil, err
	}

	out := &client.Validation{
		Success:    v.Found,
		Confidence: v.Confidence,
		Message:    v.Message,
		Alternatives: lo.Map(v.Alternatives, func(s service.Suggestion, _ int) client.Alternative {
			return client.Alternative{
				OfficeName: s.Locality.OfficeName,
				Pincode:    s.Locality.Pincode,
				District:   s.Locality.District,
				Confidence: s.Confidence,
			}
		}),
	}
	if v.Locality != nil {
		addr := toClientAddress(*v.Locality)
		out.CorrectedAddress = &addr
	}
	return out, nil
}

func (b localBackend) Search(ctx context.Context, query string) ([]client.Address, error) {
	results, err := b.app.Addresses.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return lo.Map(results, func(l models.Locality, _ int) client.Address { return toClientAddress(l) }), nil
}

func (b localBackend) Route(_ context.Context, src, dst string) (*client.RouteResult, error) {
	plan, err := b.app.Routes.Plan(service.RouteRequest{SourceDistrict: src, DestinationDistrict: dst})
	if errors.Is(err, service.ErrUnmappedDistrict) {
		return nil, fmt.Errorf("%w. Available districts: %s", err, strings.Join(b.app.Routes.Districts(), ", "))
	}
	if err != nil {
		return nil, err
	}
	if !plan.Found {
		return &client.RouteResult{Success: false, Message: plan.Message}, nil
	}

	legs := make([]client.Leg, len(plan.Summary.Legs))
	for i, l := range plan.Summary.Legs {
		legs[i] = client.Leg{
			StepNumber:           l.Step,
			HubName:              l.Hub,
			District:             l.District,
			DistanceFromPrevious: l.DistanceFromPrevious,
		}
	}
	return &client.RouteResult{
		Success: true,
		Route: &client.Route{
			Source:        client.Endpoint(plan.Source),
			Destination:   client.Endpoint(plan.Destination),
			Path:          legs,
			TotalDistance: plan.Summary.TotalDistance,
			EstimatedTime: plan.Summary.EstimatedMinutes,
			NumberOfHops:  plan.Summary.Hops,
			Message:       plan.Message,
		},
	}, nil
}

func (b localBackend) Hubs(context.Context) ([]client.Hub, error) {
	return lo.Map(b.app.Routes.Hubs(), func(h service.HubInfo, _ int) client.Hub { return client.Hub(h) }), nil
}
