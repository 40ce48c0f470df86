// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

package product

import "context"

type Repository interface {
	ListProducts(context context.Context, f Filter, limit, offset int) ([]*Product, int, error)
	GetProduct(context context.Context, id string) (*Product, error)
	CreateProduct(context context.Context, p *Product) error
	UpdateProduct(context context.Context, p *Product) error
	DeleteProduct(context context.Context, id string) error
}
