package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/fekuna/goldsmith-catalog-service/internal/apperror"
	"github.com/fekuna/goldsmith-catalog-service/internal/media"
	"github.com/fekuna/goldsmith-catalog-service/internal/model"
	"github.com/fekuna/goldsmith-catalog-service/internal/pricing"
	"github.com/fekuna/goldsmith-catalog-service/internal/product"
	"github.com/fekuna/goldsmith-catalog-service/internal/product/dto"
	"github.com/fekuna/goldsmith-catalog-service/pkg/broker"
	"github.com/fekuna/goldsmith-catalog-service/pkg/logger"
	"github.com/fekuna/goldsmith-catalog-service/pkg/search"
	"github.com/google/uuid"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

const (
	EventProductCreated = "ProductCreated"
	EventProductUpdated = "ProductUpdated"
	EventProductDeleted = "ProductDeleted"

	rateMissingAnnotation = "Gold rate not found for this karat."

	maxWeightGrams = 100000
	maxPercent     = 1000
)

// SearchIndex is satisfied by *search.Client.
type SearchIndex interface {
	CreateIndex(ctx context.Context, index, mapping string) error
	Index(ctx context.Context, index, id string, doc interface{}) error
	Delete(ctx context.Context, index, id string) error
	Search(ctx context.Context, index string, query map[string]interface{}) (*search.SearchResponse, error)
}

// Publisher is satisfied by *broker.KafkaProducer.
type Publisher interface {
	Publish(ctx context.Context, key string, event broker.Event) error
}

type productUseCase struct {
	repo      product.Repository
	rates     product.RateProvider
	uploader  media.Uploader
	es        SearchIndex
	index     string
	indexMu   sync.Mutex
	indexed   bool
	publisher Publisher
	logger    logger.ZapLogger
}

// NewProductUseCase wires the product service. es and publisher may be nil.
func NewProductUseCase(repo product.Repository, rates product.RateProvider, uploader media.Uploader, es SearchIndex, index string, publisher Publisher, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:      repo,
		rates:     rates,
		uploader:  uploader,
		es:        es,
		index:     index,
		publisher: publisher,
		logger:    log,
	}
}

// parsedFields is ProductFields after validation.
type parsedFields struct {
	name              string
	shortDescription  string
	productID         string
	karat             model.Karat
	weight            float64
	makingCostPercent float64
	wastagePercent    float64
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	fields, breakdown, rate, err := uc.prepare(ctx, &input.ProductFields)
	if err != nil {
		return nil, err
	}

	var imageURL *string
	if input.Image != nil {
		url, err := uc.upload(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		imageURL = &url
	}

	now := time.Now().UTC()
	p := &model.Product{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		ImageURL:  imageURL,
	}
	applyFields(p, fields, breakdown, rate)

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	go uc.syncToElastic(context.Background(), p)
	go uc.publish(context.Background(), EventProductCreated, p.ID, p)

	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.PricedProduct, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NotFound("Product not found")
	}

	rate, err := uc.lookupRate(ctx, p.Karat)
	if err != nil {
		return nil, err
	}
	breakdown, err := pricing.Compute(p.Weight, rate.RatePerGram, p.MakingCostPercent, p.WastagePercent)
	if err != nil {
		return nil, err
	}

	priced := &model.PricedProduct{Product: *p}
	applyBreakdown(&priced.Product, breakdown, rate)
	return priced, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.PricedProduct, int, error) {
	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	priced, err := uc.priceAll(ctx, products)
	if err != nil {
		return nil, 0, err
	}
	return priced, count, nil
}

func (uc *productUseCase) SearchProducts(ctx context.Context, query string, limit int) ([]model.PricedProduct, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperror.InvalidInput("Search query is required")
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	if uc.es != nil {
		products, err := uc.searchElastic(ctx, query, limit)
		switch {
		case err != nil:
			uc.logger.Error("ES search failed, falling back to DB", zap.Error(err))
		case len(products) > 0:
			return uc.priceAll(ctx, products)
		default:
			// the index may lag behind the store
			uc.logger.Debug("ES search found nothing, falling back to DB", zap.String("query", query))
		}
	}

	products, _, err := uc.repo.FindAll(ctx, &dto.ProductFilters{SearchQuery: query, Page: 1, PageSize: limit})
	if err != nil {
		return nil, err
	}
	return uc.priceAll(ctx, products)
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NotFound("Product not found")
	}

	fields, breakdown, rate, err := uc.prepare(ctx, &input.ProductFields)
	if err != nil {
		return nil, err
	}

	if input.Image != nil {
		url, err := uc.upload(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		p.ImageURL = &url
	}

	applyFields(p, fields, breakdown, rate)
	p.UpdatedAt = time.Now().UTC()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	go uc.syncToElastic(context.Background(), p)
	go uc.publish(context.Background(), EventProductUpdated, p.ID, p)

	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	if uc.es != nil {
		go func() {
			if err := uc.es.Delete(context.Background(), uc.index, id); err != nil {
				uc.logger.Error("failed to delete product from ES", zap.String("product_id", id), zap.Error(err))
			}
		}()
	}
	go uc.publish(context.Background(), EventProductDeleted, id, map[string]string{"id": id})

	return nil
}

// prepare runs the checks shared by create and update, in order: field
// presence, karat, gold rate, numeric values, then pricing. Nothing is
// uploaded or written until it succeeds.
func (uc *productUseCase) prepare(ctx context.Context, in *dto.ProductFields) (*parsedFields, pricing.Breakdown, *model.GoldRate, error) {
	var none pricing.Breakdown

	f := &parsedFields{
		name:             strings.TrimSpace(in.Name),
		shortDescription: strings.TrimSpace(in.ShortDescription),
		productID:        strings.TrimSpace(in.ProductID),
	}
	if f.name == "" {
		return nil, none, nil, apperror.InvalidInput("Name is required")
	}

	karat, err := model.ParseKarat(in.Karat)
	if err != nil {
		return nil, none, nil, apperror.InvalidInput("Invalid karat value")
	}
	f.karat = karat

	rate, err := uc.lookupRate(ctx, karat)
	if err != nil {
		return nil, none, nil, err
	}

	if f.weight, err = parseNumber(in.Weight); err != nil || f.weight <= 0 || f.weight > maxWeightGrams {
		return nil, none, nil, apperror.InvalidInput("Weight must be a number greater than 0 and at most 100000")
	}
	if f.makingCostPercent, err = parseNumber(in.MakingCostPercent); err != nil || f.makingCostPercent < 0 || f.makingCostPercent > maxPercent {
		return nil, none, nil, apperror.InvalidInput("Making cost must be a number between 0 and 1000")
	}
	if f.wastagePercent, err = parseNumber(in.WastagePercent); err != nil || f.wastagePercent < 0 || f.wastagePercent > maxPercent {
		return nil, none, nil, apperror.InvalidInput("Wastage must be a number between 0 and 1000")
	}

	breakdown, err := pricing.Compute(f.weight, rate.RatePerGram, f.makingCostPercent, f.wastagePercent)
	if err != nil {
		return nil, none, nil, err
	}
	return f, breakdown, rate, nil
}

func parseNumber(raw string) (float64, error) {
	v, err := cast.ToFloat64E(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("not a finite number")
	}
	return v, nil
}

// lookupRate maps a missing or unset rate to apperror.ErrRateNotSet.
func (uc *productUseCase) lookupRate(ctx context.Context, karat model.Karat) (*model.GoldRate, error) {
	rate, err := uc.rates.GetRate(ctx, karat)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.RateNotSet()
		}
		return nil, err
	}
	if !rate.IsSet() {
		return nil, apperror.RateNotSet()
	}
	return rate, nil
}

func (uc *productUseCase) upload(ctx context.Context, file *media.File) (string, error) {
	url, err := uc.uploader.Upload(ctx, *file)
	if err != nil {
		return "", apperror.UploadFailed(err)
	}
	return url, nil
}

// priceAll reprices every product at the current rate. A product whose karat
// has no rate keeps its stored snapshot and is annotated instead of failing
// the whole batch; storage errors still fail it.
func (uc *productUseCase) priceAll(ctx context.Context, products []model.Product) ([]model.PricedProduct, error) {
	rates := map[model.Karat]*model.GoldRate{}
	out := make([]model.PricedProduct, len(products))

	for i := range products {
		out[i] = model.PricedProduct{Product: products[i]}
		p := &out[i].Product

		rate, seen := rates[p.Karat]
		if !seen {
			var err error
			rate, err = uc.lookupRate(ctx, p.Karat)
			if err != nil && !errors.Is(err, apperror.ErrRateNotSet) {
				return nil, err
			}
			rates[p.Karat] = rate
		}
		if rate == nil {
			out[i].PriceError = rateMissingAnnotation
			continue
		}

		breakdown, err := pricing.Compute(p.Weight, rate.RatePerGram, p.MakingCostPercent, p.WastagePercent)
		if err != nil {
			_, msg := apperror.StatusOf(err)
			out[i].PriceError = msg
			continue
		}
		applyBreakdown(p, breakdown, rate)
	}
	return out, nil
}

func applyFields(p *model.Product, f *parsedFields, b pricing.Breakdown, rate *model.GoldRate) {
	p.Name = f.name
	p.ShortDescription = f.shortDescription
	p.ExternalProductID = f.productID
	p.Karat = f.karat
	p.Weight = f.weight
	p.MakingCostPercent = f.makingCostPercent
	p.WastagePercent = f.wastagePercent
	applyBreakdown(p, b, rate)
}

func applyBreakdown(p *model.Product, b pricing.Breakdown, rate *model.GoldRate) {
	p.Price = b.Total
	p.MakingCost = b.MakingCost
	p.WastageCost = b.WastageCost
	p.GoldRatePerGram = rate.RatePerGram
}

const indexMapping = `{
	"mappings": {
		"properties": {
			"name": { "type": "text" },
			"shortDescription": { "type": "text" },
			"productId": { "type": "keyword" },
			"karat": { "type": "keyword" },
			"weight": { "type": "double" },
			"createdAt": { "type": "date" }
		}
	}
}`

func (uc *productUseCase) syncToElastic(ctx context.Context, p *model.Product) {
	if uc.es == nil {
		return
	}
	uc.ensureIndex(ctx)

	if err := uc.es.Index(ctx, uc.index, p.ID, p); err != nil {
		uc.logger.Error("failed to index product", zap.String("product_id", p.ID), zap.Error(err))
	}
}

// ensureIndex creates the index once; a failed attempt is retried on the
// next sync.
func (uc *productUseCase) ensureIndex(ctx context.Context) {
	uc.indexMu.Lock()
	defer uc.indexMu.Unlock()
	if uc.indexed {
		return
	}
	if err := uc.es.CreateIndex(ctx, uc.index, indexMapping); err != nil {
		uc.logger.Warn("failed to ensure product index", zap.Error(err))
		return
	}
	uc.indexed = true
}

// searchElastic resolves matching ids in the index and loads the rows from
// the store, so results never carry stale index copies.
func (uc *productUseCase) searchElastic(ctx context.Context, query string, limit int) ([]model.Product, error) {
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"name^3", "shortDescription", "productId"},
				"fuzziness": "AUTO",
			},
		},
		"size":    limit,
		"_source": false,
	}

	res, err := uc.es.Search(ctx, uc.index, q)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		ids = append(ids, hit.ID)
	}

	found, err := uc.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// keep relevance order from the index
	byID := make(map[string]model.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	products := make([]model.Product, 0, len(found))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			products = append(products, p)
		}
	}
	return products, nil
}

func (uc *productUseCase) publish(ctx context.Context, eventType, key string, payload interface{}) {
	if uc.publisher == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	event := broker.Event{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Payload:   data,
		Timestamp: time.Now().UTC(),
	}
	if err := uc.publisher.Publish(ctx, key, event); err != nil {
		uc.logger.Error("failed to publish product event", zap.String("event_type", eventType), zap.Error(err))
	}
}
