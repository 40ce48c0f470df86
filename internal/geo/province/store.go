// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

package province

import "context"

type Repository interface {
	ListProvinces(context context.Context, f Filter, limit, offset int) ([]*Province, int, error)
	GetProvince(context context.Context, id string) (*Province, error)
	CreateProvince(context context.Context, p *Province) error
	UpdateProvince(context context.Context, p *Province) error
	DeleteProvince(context context.Context, id string) error
}
