package worker

import (
	"context"
	"sync"
	"time"

	catalogmodels "meta_market/internal/api/catalog/models"
	"meta_market/internal/api/events"
	"meta_market/internal/global"
	"meta_market/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// TaxonomyRollupWorker tính lại các con số denormalized của taxonomy:
// productCount của danh mục và totalProducts của tag. Các con số này chỉ để
// hiển thị, nguồn sự thật luôn là collection sản phẩm.
//
// Worker nghe event thay đổi dữ liệu của sản phẩm, gom các danh mục/tag bị
// ảnh hưởng vào dirty set trong memory rồi tính lại theo chu kỳ. Event delete
// không còn document nên đánh dấu tính lại toàn bộ ở lần chạy tiếp theo.
type TaxonomyRollupWorker struct {
	interval time.Duration

	mu              sync.Mutex
	dirtyCategories map[primitive.ObjectID]struct{}
	dirtyTags       map[primitive.ObjectID]struct{}
	fullRecompute   bool
}

// NewTaxonomyRollupWorker tạo mới TaxonomyRollupWorker.
// Tham số:
//   - interval: Khoảng thời gian giữa các lần tính lại (mặc định: 1 phút)
func NewTaxonomyRollupWorker(interval time.Duration) *TaxonomyRollupWorker {
	if interval < 10*time.Second {
		interval = time.Minute
	}
	w := &TaxonomyRollupWorker{
		interval:        interval,
		dirtyCategories: make(map[primitive.ObjectID]struct{}),
		dirtyTags:       make(map[primitive.ObjectID]struct{}),
		// Lần chạy đầu tính lại toàn bộ để sửa số liệu lệch từ lần chạy trước
		fullRecompute: true,
	}
	w.registerEventHandler()
	return w
}

// registerEventHandler nghe event CRUD của collection sản phẩm và đánh dấu
// các danh mục/tag bị ảnh hưởng.
func (w *TaxonomyRollupWorker) registerEventHandler() {
	events.OnDataChanged(func(ctx context.Context, e events.DataChangeEvent) {
		if e.CollectionName != global.MongoDB_ColNames.Products {
			return
		}

		w.mu.Lock()
		defer w.mu.Unlock()

		product, ok := e.Document.(catalogmodels.Product)
		if !ok {
			// Delete không còn document, không biết danh mục/tag nào bị ảnh hưởng
			w.fullRecompute = true
			return
		}

		if !product.CategoryID.IsZero() {
			w.dirtyCategories[product.CategoryID] = struct{}{}
		}
		for _, tagID := range product.TagIDs {
			w.dirtyTags[tagID] = struct{}{}
		}

		// Update có thể đã chuyển sản phẩm SANG danh mục/tag mới; danh mục/tag
		// cũ không còn trong document nên phải tính lại toàn bộ
		if e.Operation == events.OpUpdate || e.Operation == events.OpUpsert {
			w.fullRecompute = true
		}
	})
}

// takeSnapshot lấy và reset dirty set hiện tại.
func (w *TaxonomyRollupWorker) takeSnapshot() (map[primitive.ObjectID]struct{}, map[primitive.ObjectID]struct{}, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	cats := w.dirtyCategories
	tags := w.dirtyTags
	full := w.fullRecompute

	w.dirtyCategories = make(map[primitive.ObjectID]struct{})
	w.dirtyTags = make(map[primitive.ObjectID]struct{})
	w.fullRecompute = false

	return cats, tags, full
}

func (w *TaxonomyRollupWorker) collections() (categoryCol, tagCol, productCol *mongo.Collection, ok bool) {
	categoryCol, ok = global.RegistryCollections.Get(global.MongoDB_ColNames.Categories)
	if !ok {
		return nil, nil, nil, false
	}
	tagCol, ok = global.RegistryCollections.Get(global.MongoDB_ColNames.Tags)
	if !ok {
		return nil, nil, nil, false
	}
	productCol, ok = global.RegistryCollections.Get(global.MongoDB_ColNames.Products)
	if !ok {
		return nil, nil, nil, false
	}
	return categoryCol, tagCol, productCol, true
}

// recomputeCategory đếm lại số sản phẩm của một danh mục và ghi đè productCount.
// Ghi trực tiếp xuống collection (không qua base service) để không phát event mới.
func (w *TaxonomyRollupWorker) recomputeCategory(ctx context.Context, categoryCol, productCol *mongo.Collection, id primitive.ObjectID) error {
	count, err := productCol.CountDocuments(ctx, bson.M{"categoryId": id})
	if err != nil {
		return err
	}
	_, err = categoryCol.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"productCount": count}})
	return err
}

// recomputeTag đếm lại số sản phẩm đang gắn một tag và ghi đè totalProducts.
func (w *TaxonomyRollupWorker) recomputeTag(ctx context.Context, tagCol, productCol *mongo.Collection, id primitive.ObjectID) error {
	count, err := productCol.CountDocuments(ctx, bson.M{"tagIds": id})
	if err != nil {
		return err
	}
	_, err = tagCol.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"totalProducts": count}})
	return err
}

// allIDs load toàn bộ _id của một collection (dùng khi tính lại toàn bộ).
func allIDs(ctx context.Context, col *mongo.Collection) ([]primitive.ObjectID, error) {
	cursor, err := col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return ids, nil
}

// Start chạy worker trong vòng lặp: mỗi interval tính lại các danh mục/tag
// trong dirty set (hoặc toàn bộ nếu có đánh dấu fullRecompute).
func (w *TaxonomyRollupWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval": w.interval.String(),
	}).Info("🧮 [TAXONOMY_ROLLUP] Starting Taxonomy Rollup Worker...")

	for {
		select {
		case <-ctx.Done():
			log.Info("🧮 [TAXONOMY_ROLLUP] Taxonomy Rollup Worker stopped")
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.WithFields(map[string]interface{}{
							"panic": r,
						}).Error("🧮 [TAXONOMY_ROLLUP] Panic khi tính lại số liệu, sẽ tiếp tục ở lần chạy tiếp theo")
					}
				}()

				dirtyCats, dirtyTags, full := w.takeSnapshot()
				if len(dirtyCats) == 0 && len(dirtyTags) == 0 && !full {
					return
				}

				categoryCol, tagCol, productCol, ok := w.collections()
				if !ok {
					log.Warn("🧮 [TAXONOMY_ROLLUP] Collections chưa được đăng ký, bỏ qua lần chạy này")
					return
				}

				if full {
					catIDs, err := allIDs(ctx, categoryCol)
					if err != nil {
						log.WithError(err).Error("🧮 [TAXONOMY_ROLLUP] Lỗi load danh sách danh mục")
						return
					}
					for _, id := range catIDs {
						dirtyCats[id] = struct{}{}
					}
					tagIDs, err := allIDs(ctx, tagCol)
					if err != nil {
						log.WithError(err).Error("🧮 [TAXONOMY_ROLLUP] Lỗi load danh sách tag")
						return
					}
					for _, id := range tagIDs {
						dirtyTags[id] = struct{}{}
					}
				}

				recomputed := 0
				for id := range dirtyCats {
					if err := w.recomputeCategory(ctx, categoryCol, productCol, id); err != nil {
						log.WithError(err).WithFields(map[string]interface{}{
							"categoryId": id.Hex(),
						}).Warn("🧮 [TAXONOMY_ROLLUP] Tính lại productCount thất bại, sẽ thử lại lần sau")
						w.markCategoryDirty(id)
						continue
					}
					recomputed++
				}
				for id := range dirtyTags {
					if err := w.recomputeTag(ctx, tagCol, productCol, id); err != nil {
						log.WithError(err).WithFields(map[string]interface{}{
							"tagId": id.Hex(),
						}).Warn("🧮 [TAXONOMY_ROLLUP] Tính lại totalProducts thất bại, sẽ thử lại lần sau")
						w.markTagDirty(id)
						continue
					}
					recomputed++
				}

				if recomputed > 0 {
					log.WithFields(map[string]interface{}{
						"recomputed": recomputed,
						"full":       full,
					}).Info("🧮 [TAXONOMY_ROLLUP] Đã tính lại số liệu taxonomy")
				}
			}()
		}
	}
}

func (w *TaxonomyRollupWorker) markCategoryDirty(id primitive.ObjectID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.dirtyCategories[id] = struct{}{}
}

func (w *TaxonomyRollupWorker) markTagDirty(id primitive.ObjectID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.dirtyTags[id] = struct{}{}
}
