package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/samirrijal/spraylog/internal/core/domain"
)

// Field names follow the JSON tags of the domain types, which graphql-go's
// default resolver uses to read struct fields.

// buildSchema creates the read-only GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	geoPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GeoPoint",
		Fields: graphql.Fields{
			"latitude":  &graphql.Field{Type: graphql.Float},
			"longitude": &graphql.Field{Type: graphql.Float},
		},
	})

	paddockType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Paddock",
		Fields: graphql.Fields{
			"id":                  &graphql.Field{Type: graphql.String},
			"name":                &graphql.Field{Type: graphql.String},
			"farm":                &graphql.Field{Type: graphql.String},
			"area":                &graphql.Field{Type: graphql.Float},
			"boundaryCoordinates": &graphql.Field{Type: graphql.NewList(geoPointType)},
			"centerLatitude":      &graphql.Field{Type: graphql.Float},
			"centerLongitude":     &graphql.Field{Type: graphql.Float},
			"distance":            &graphql.Field{Type: graphql.Float, Description: "km from the query point"},
			"createdAt":           &graphql.Field{Type: graphql.DateTime},
		},
	})

	chemicalType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Chemical",
		Fields: graphql.Fields{
			"name": &graphql.Field{Type: graphql.String},
			"rate": &graphql.Field{Type: graphql.Float},
			"unit": &graphql.Field{Type: graphql.String},
		},
	})

	weatherType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Weather",
		Fields: graphql.Fields{
			"windSpeed":     &graphql.Field{Type: graphql.Float},
			"windDirection": &graphql.Field{Type: graphql.Float},
			"temperature":   &graphql.Field{Type: graphql.Float},
			"humidity":      &graphql.Field{Type: graphql.Float},
			"windCompliant": &graphql.Field{
				Type: graphql.Boolean,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if w, ok := p.Source.(*domain.WeatherSnapshot); ok && w != nil {
						return w.WindCompliant(), nil
					}
					return nil, nil
				},
			},
		},
	})

	gpsType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GPSFix",
		Fields: graphql.Fields{
			"latitude":  &graphql.Field{Type: graphql.Float},
			"longitude": &graphql.Field{Type: graphql.Float},
			"accuracy":  &graphql.Field{Type: graphql.Float},
		},
	})

	recommendationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Recommendation",
		Fields: graphql.Fields{
			"id":            &graphql.Field{Type: graphql.String},
			"applicationId": &graphql.Field{Type: graphql.String},
			"author":        &graphql.Field{Type: graphql.String},
			"note":          &graphql.Field{Type: graphql.String},
			"priority":      &graphql.Field{Type: graphql.String},
			"createdAt":     &graphql.Field{Type: graphql.DateTime},
		},
	})

	applicationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Application",
		Fields: graphql.Fields{
			"id":              &graphql.Field{Type: graphql.String},
			"paddockIds":      &graphql.Field{Type: graphql.NewList(graphql.String)},
			"operator":        &graphql.Field{Type: graphql.String},
			"farm":            &graphql.Field{Type: graphql.String},
			"applicationDate": &graphql.Field{Type: graphql.DateTime},
			"waterRate":       &graphql.Field{Type: graphql.Float},
			"area":            &graphql.Field{Type: graphql.Float},
			"chemicals":       &graphql.Field{Type: graphql.NewList(chemicalType)},
			"weather":         &graphql.Field{Type: weatherType},
			"gps":             &graphql.Field{Type: gpsType},
			"createdAt":       &graphql.Field{Type: graphql.DateTime},
			"recommendations": &graphql.Field{
				Type: graphql.NewList(recommendationType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					app, ok := p.Source.(domain.Application)
					if !ok {
						if ptr, isPtr := p.Source.(*domain.Application); isPtr && ptr != nil {
							app, ok = *ptr, true
						}
					}
					if !ok {
						return nil, nil
					}
					return deps.Recommendations.List(p.Context, app.ID)
				},
			},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"paddocks": &graphql.Field{
				Type:        graphql.NewList(paddockType),
				Description: "List all paddocks in creation order",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Paddocks.List(p.Context)
				},
			},
			"paddock": &graphql.Field{
				Type:        paddockType,
				Description: "Get a paddock by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return nullIfMissing(deps.Paddocks.Get(p.Context, p.Args["id"].(string)))
				},
			},
			"paddocksNearby": &graphql.Field{
				Type:        graphql.NewList(paddockType),
				Description: "Rank paddocks by distance from a point, nearest first",
				Args: graphql.FieldConfigArgument{
					"lat":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lng":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"radiusKm": &graphql.ArgumentConfig{Type: graphql.Float, DefaultValue: 0.0},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					lat := p.Args["lat"].(float64)
					lng := p.Args["lng"].(float64)
					radius := p.Args["radiusKm"].(float64)
					return deps.Paddocks.Proximity(p.Context, lat, lng, radius)
				},
			},
			"applications": &graphql.Field{
				Type:        graphql.NewList(applicationType),
				Description: "List all spray applications in recording order",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Applications.List(p.Context)
				},
			},
			"application": &graphql.Field{
				Type:        applicationType,
				Description: "Get an application by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return nullIfMissing(deps.Applications.Get(p.Context, p.Args["id"].(string)))
				},
			},
			"recommendations": &graphql.Field{
				Type:        graphql.NewList(recommendationType),
				Description: "Recommendations attached to an application",
				Args: graphql.FieldConfigArgument{
					"applicationId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Recommendations.List(p.Context, p.Args["applicationId"].(string))
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// nullIfMissing turns a not-found lookup into a GraphQL null.
func nullIfMissing[T any](v *T, err error) (interface{}, error) {
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// Programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := decodeBody(c, &req); err != nil || req.Query == "" {
			return errBadRequest(c, "request body must be JSON with a query")
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}
