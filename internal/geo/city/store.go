// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

package city

import "context"

type Repository interface {
	ListCities(context context.Context, f Filter, limit, offset int) ([]*City, int, error)
	GetCity(context context.Context, id string) (*City, error)
	CreateCity(context context.Context, c *City) error
	UpdateCity(context context.Context, c *City) error
	DeleteCity(context context.Context, id string) error
}
