package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/shantum/COH-ERP2-sub002/pkg/db/models"
	"github.com/shantum/COH-ERP2-sub002/pkg/enums"
	pkgerrors "github.com/shantum/COH-ERP2-sub002/pkg/errors"
	"github.com/shantum/COH-ERP2-sub002/pkg/pagination"
)

// searchBucketCap limits every bucket in a search-all response.
const searchBucketCap = 20

// minSearchLength is the shortest query search-all accepts.
const minSearchLength = 2

// Service defines the read surface for the orders grid and search.
type Service interface {
	List(ctx context.Context, input ListInput) (*ListResult, error)
	GetByID(ctx context.Context, id uuid.UUID) (*OrderDetail, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*OrderDetail, error)
	SearchAll(ctx context.Context, query string) (*SearchAllResult, error)
	SearchUnified(ctx context.Context, query string, page pagination.Params) (*ListResult, error)
	UpdateInternalNotes(ctx context.Context, id uuid.UUID, notes *string) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService builds the orders read service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	if !input.View.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeBadRequest, fmt.Sprintf("unknown view %q", input.View))
	}
	if input.SubFilter != "" && !input.SubFilter.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeBadRequest, fmt.Sprintf("unknown sub-filter %q", input.SubFilter))
	}
	if input.SubFilter != "" && input.SubFilter != enums.ShippedSubFilterAll && input.View != enums.OrderViewShipped {
		return nil, pkgerrors.New(pkgerrors.CodeBadRequest, "sub-filter only applies to the shipped view")
	}
	if input.Days < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeBadRequest, "days must not be negative")
	}
	sortCol, ok := SortColumn(input.SortField)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeBadRequest, fmt.Sprintf("unsupported sort field %q", input.SortField))
	}

	now := s.now()
	scopes := []func(*gorm.DB) *gorm.DB{ViewScope(input.View, input.SubFilter)}
	if strings.TrimSpace(input.Search) != "" {
		scopes = append(scopes, SearchScope(input.Search))
	}
	if input.Days > 0 {
		scopes = append(scopes, DaysScope(input.Days, now))
	}

	page := pagination.Params{Page: input.Page, PageSize: input.PageSize}.Normalize()
	rows, total, err := s.repo.ListOrders(ctx, ListQuery{
		Scopes:   scopes,
		SortCol:  sortCol,
		SortDesc: input.SortDesc,
		Offset:   page.Offset(),
		Limit:    page.Limit(),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}

	return &ListResult{
		Rows:       Flatten(rows, now),
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalRows:  total,
		TotalPages: pagination.TotalPages(total, page.PageSize),
	}, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*OrderDetail, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeBadRequest, "order id required")
	}
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}
	return s.detail(order), nil
}

func (s *service) GetByOrderNumber(ctx context.Context, orderNumber string) (*OrderDetail, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return nil, pkgerrors.New(pkgerrors.CodeBadRequest, "order number required")
	}
	order, err := s.repo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}
	return s.detail(order), nil
}

func (s *service) detail(order *models.Order) *OrderDetail {
	return &OrderDetail{
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		OrderDate:     order.OrderDate,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		CustomerPhone: order.CustomerPhone,
		PaymentMethod: order.PaymentMethod,
		TotalAmount:   order.TotalAmount,
		IsArchived:    order.IsArchived,
		IsExchange:    order.IsExchange,
		Rows:          FlattenOrder(order, s.now()),
	}
}

// SearchAll runs the OR-search against every bucket concurrently and
// returns only the non-empty ones. Zero matches everywhere is a valid
// empty result, never an error.
func (s *service) SearchAll(ctx context.Context, query string) (*SearchAllResult, error) {
	query = strings.TrimSpace(query)
	if len(query) < minSearchLength {
		return nil, pkgerrors.New(pkgerrors.CodeBadRequest, "search query must be at least 2 characters")
	}

	var mu sync.Mutex
	hitsByBucket := make(map[enums.SearchBucket][]models.Order, len(enums.SearchBuckets))

	g, gctx := errgroup.WithContext(ctx)
	for _, bucket := range enums.SearchBuckets {
		bucket := bucket
		g.Go(func() error {
			matches, err := s.repo.SearchBucket(gctx, bucket, query, searchBucketCap)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("search bucket %s", bucket))
			}
			mu.Lock()
			hitsByBucket[bucket] = matches
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &SearchAllResult{Results: []SearchBucketResult{}}
	for _, bucket := range enums.SearchBuckets {
		matches := hitsByBucket[bucket]
		if len(matches) == 0 {
			continue
		}
		hits := make([]SearchHit, 0, len(matches))
		for i := range matches {
			order := &matches[i]
			hits = append(hits, SearchHit{
				OrderID:       order.ID,
				OrderNumber:   order.OrderNumber,
				OrderDate:     order.OrderDate,
				CustomerName:  order.CustomerName,
				TotalAmount:   order.TotalAmount,
				PaymentMethod: order.PaymentMethod,
				LineCount:     len(order.Lines),
			})
		}
		result.Results = append(result.Results, SearchBucketResult{
			Bucket:      bucket,
			DisplayName: bucket.DisplayName(),
			Hits:        hits,
		})
		result.TotalResults += len(hits)
	}
	return result, nil
}

// SearchUnified is the paginated flattened-row search across every view,
// archived orders included.
func (s *service) SearchUnified(ctx context.Context, query string, page pagination.Params) (*ListResult, error) {
	query = strings.TrimSpace(query)
	if len(query) < minSearchLength {
		return nil, pkgerrors.New(pkgerrors.CodeBadRequest, "search query must be at least 2 characters")
	}

	now := s.now()
	page = page.Normalize()
	rows, total, err := s.repo.ListOrders(ctx, ListQuery{
		Scopes:   []func(*gorm.DB) *gorm.DB{SearchScope(query)},
		SortCol:  "orders.order_date",
		SortDesc: true,
		Offset:   page.Offset(),
		Limit:    page.Limit(),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unified search")
	}

	return &ListResult{
		Rows:       Flatten(rows, now),
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalRows:  total,
		TotalPages: pagination.TotalPages(total, page.PageSize),
	}, nil
}

func (s *service) UpdateInternalNotes(ctx context.Context, id uuid.UUID, notes *string) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeBadRequest, "order id required")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}
	if err := s.repo.UpdateInternalNotes(ctx, id, notes); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update notes")
	}
	return nil
}
