package upstream

import (
	"context"

	"haksa-portal/backend/internal/model"
)

// CartAPI 장바구니 조작
// 장바구니 담기는 좌석을 선점하지 않으므로 정원 마감 강좌도 담을 수 있다
type CartAPI interface {
	List(ctx context.Context) ([]model.CartItem, error)
	BulkAdd(ctx context.Context, courseIDs []int64) error
	BulkRemove(ctx context.Context, cartIDs []int64) error
	// Clear 전체 비우기 (무조건 수행)
	Clear(ctx context.Context) error
}

type cartAPI struct {
	client *Client
}

// NewCartAPI CartAPI 구현 생성
func NewCartAPI(client *Client) CartAPI {
	return &cartAPI{client: client}
}

func (a *cartAPI) List(ctx context.Context) ([]model.CartItem, error) {
	var raw []rawCartItem
	if err := a.client.get(ctx, "/api/v1/carts", nil, &raw); err != nil {
		return nil, err
	}
	items := make([]model.CartItem, 0, len(raw))
	for i := range raw {
		items = append(items, toCartItem(&raw[i]))
	}
	return items, nil
}

func (a *cartAPI) BulkAdd(ctx context.Context, courseIDs []int64) error {
	body := map[string][]int64{"courseIds": courseIDs}
	return a.client.post(ctx, "/api/v1/carts/bulk", body, nil)
}

func (a *cartAPI) BulkRemove(ctx context.Context, cartIDs []int64) error {
	body := map[string][]int64{"cartIds": cartIDs}
	return a.client.delete(ctx, "/api/v1/carts/bulk", body, nil)
}

func (a *cartAPI) Clear(ctx context.Context) error {
	return a.client.delete(ctx, "/api/v1/carts", nil, nil)
}

