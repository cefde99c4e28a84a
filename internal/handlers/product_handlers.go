package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/pacifichome/smarthome-admin/internal/models"
	"github.com/pacifichome/smarthome-admin/internal/store"
	"github.com/pacifichome/smarthome-admin/internal/uploads"
)

const productTimeLayout = "2006-01-02 15:04:05"

// bindProductPayload decodes and validates the JSON metadata carried in the
// multipart "data" field.
func (h *Handlers) bindProductPayload(c *gin.Context) (*models.ProductPayload, error) {
	raw := c.PostForm("data")
	if raw == "" {
		return nil, store.ValidationError{Message: "Invalid JSON in 'data' field"}
	}

	var payload models.ProductPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, store.ValidationError{Message: "Invalid JSON in 'data' field"}
	}
	if err := h.validate.Struct(&payload); err != nil {
		return nil, store.ValidationError{Message: formatPayloadError(err)}
	}

	trimmed := strings.TrimSpace(*payload.Name)
	if trimmed == "" {
		return nil, store.ValidationError{Message: "Product name is required."}
	}
	payload.Name = &trimmed
	return &payload, nil
}

// saveMainImage stores the required/optional main image and translates the
// policy errors into the messages the admin UI shows. A policy violation on
// the main image fails the whole operation.
func (h *Handlers) saveMainImage(c *gin.Context) (string, error) {
	fh, err := c.FormFile("main_image")
	if err != nil {
		return "", err
	}

	name, err := h.Images.SaveImage(fh, "main")
	switch {
	case errors.Is(err, uploads.ErrDisallowedType):
		return "", store.ValidationError{Message: "Main image type not allowed"}
	case errors.Is(err, uploads.ErrTooLarge):
		return "", store.ValidationError{Message: "Main image exceeds 5 MB"}
	case err != nil:
		return "", err
	}
	return name, nil
}

// saveSubImages stores every valid file in the sub_images slot. A violating
// sub-image is skipped, never fatal.
func (h *Handlers) saveSubImages(c *gin.Context) []string {
	names := []string{}
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return names
	}
	for _, fh := range form.File["sub_images"] {
		name, err := h.Images.SaveImage(fh, "sub")
		if err != nil {
			continue
		}
		names = append(names, name)
	}
	return names
}

// hasSubImages reports whether the request supplied anything in the
// sub_images slot, valid or not.
func hasSubImages(c *gin.Context) bool {
	form, err := c.MultipartForm()
	return err == nil && form != nil && len(form.File["sub_images"]) > 0
}

// imageURL resolves a stored value into an absolute URL. Values that are
// already absolute pass through; legacy "images/<name>" values resolve to
// the same flat directory as bare names.
func (h *Handlers) imageURL(src string) string {
	if strings.HasPrefix(src, "http") {
		return src
	}
	return h.Cfg.BaseImageURL + path.Base(src)
}

// CreateProduct handles POST /v1/products (multipart).
func (h *Handlers) CreateProduct(c *gin.Context) {
	payload, err := h.bindProductPayload(c)
	if err != nil {
		fail(c, err)
		return
	}
	categoryIDs := models.NormalizeCategoryIDs(*payload.CategoryIDs)

	if _, err := c.FormFile("main_image"); err != nil {
		failValidation(c, "Main image is required")
		return
	}
	mainName, err := h.saveMainImage(c)
	if err != nil {
		fail(c, err)
		return
	}
	subNames := h.saveSubImages(c)

	sku := ""
	if payload.SKU != nil {
		sku = strings.TrimSpace(*payload.SKU)
	}
	p := &models.Product{
		Name:          *payload.Name,
		SKU:           sku,
		Price:         decimal.NewFromFloat(*payload.Price),
		StockQuantity: *payload.StockQuantity,
		Description:   *payload.Description,
		ImagePath:     mainName,
		ImagesJSON:    models.EncodeImagesJSON(subNames),
	}

	id, err := h.Store.CreateProduct(c.Request.Context(), p, categoryIDs)
	if err != nil {
		// Do not leave just-saved files orphaned behind a failed insert.
		h.Images.Remove(mainName)
		h.Images.RemoveAll(subNames)
		fail(c, err)
		return
	}

	ok(c, "Product added successfully.", gin.H{
		"product_id":   id,
		"main_image":   mainName,
		"sub_images":   subNames,
		"category_ids": categoryIDs,
	})
}

// GetProduct handles GET /v1/products/:id.
func (h *Handlers) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		failValidation(c, "Invalid product ID")
		return
	}

	p, categoryIDs, err := h.Store.GetProduct(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	// Split the stored sub-images into main vs others. Only legacy rows
	// carry an is_main flag; the flat image_path column is the fallback.
	mainImage := ""
	subImages := []string{}
	for _, entry := range models.ParseImagesJSON(p.ImagesJSON) {
		url := h.imageURL(entry.Src)
		if entry.IsMain && mainImage == "" {
			mainImage = url
			continue
		}
		subImages = append(subImages, url)
	}
	if mainImage == "" && p.ImagePath != "" {
		mainImage = h.imageURL(p.ImagePath)
	}

	categories, err := h.Store.CategoriesByIDs(c.Request.Context(), categoryIDs)
	if err != nil {
		fail(c, err)
		return
	}

	detail := models.ProductDetail{
		ID:            p.ID,
		Name:          p.Name,
		SKU:           p.SKU,
		Price:         p.Price.InexactFloat64(),
		StockQuantity: p.StockQuantity,
		Description:   p.Description,
		MainImage:     mainImage,
		SubImages:     subImages,
		Categories:    categories,
		CreatedAt:     p.CreatedAt.Format(productTimeLayout),
		UpdatedAt:     p.UpdatedAt.Format(productTimeLayout),
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "product": detail})
}

// ListProducts handles GET and POST /v1/products. Query parameters win;
// a POST body fills in whatever the query string did not supply.
func (h *Handlers) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	perPage, _ := strconv.Atoi(c.Query("per_page"))
	search := c.Query("search")

	if c.Request.Method == http.MethodPost {
		var body models.ListProductsInput
		if err := c.ShouldBindJSON(&body); err == nil {
			if page == 0 {
				page = body.Page
			}
			if perPage == 0 {
				perPage = body.PerPage
			}
			if search == "" {
				search = body.Search
			}
		}
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	listed, total, err := h.Store.ListProducts(c.Request.Context(), page, perPage, search)
	if err != nil {
		fail(c, err)
		return
	}

	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}

	rows := make([]models.ProductListRow, 0, len(listed))
	for _, lp := range listed {
		imageURL := ""
		if lp.ImagePath != "" {
			imageURL = h.imageURL(lp.ImagePath)
		} else if entries := models.ParseImagesJSON(lp.ImagesJSON); len(entries) > 0 {
			imageURL = h.imageURL(entries[0].Src)
		}
		rows = append(rows, models.ProductListRow{
			ID:            lp.ID,
			Name:          lp.Name,
			SKU:           lp.SKU,
			Price:         lp.Price.InexactFloat64(),
			StockQuantity: lp.StockQuantity,
			Description:   lp.Description,
			ImageURL:      imageURL,
			CategoryName:  lp.CategoryName,
			CategoryIDs:   lp.CategoryIDs,
			CreatedAt:     lp.CreatedAt.Format(productTimeLayout),
			UpdatedAt:     lp.UpdatedAt.Format(productTimeLayout),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"data":        rows,
		"total":       total,
		"page":        page,
		"per_page":    perPage,
		"total_pages": totalPages,
	})
}

// UpdateProduct handles POST /v1/products/update (multipart, id inside the
// data JSON). Scalar fields are full-replace; images only change when new
// files arrive.
func (h *Handlers) UpdateProduct(c *gin.Context) {
	payload, err := h.bindProductPayload(c)
	if err != nil {
		fail(c, err)
		return
	}
	if payload.ID <= 0 {
		failValidation(c, "Invalid product ID")
		return
	}
	categoryIDs := models.NormalizeCategoryIDs(*payload.CategoryIDs)

	existing, _, err := h.Store.GetProduct(c.Request.Context(), payload.ID)
	if err != nil {
		fail(c, err)
		return
	}

	mainName := existing.ImagePath
	oldMain := ""
	if _, err := c.FormFile("main_image"); err == nil {
		newMain, err := h.saveMainImage(c)
		if err != nil {
			fail(c, err)
			return
		}
		oldMain = existing.ImagePath
		mainName = newMain
	}

	// Any file in the sub_images slot replaces the whole set; an empty slot
	// leaves the existing set untouched.
	imagesJSON := existing.ImagesJSON
	var newSubs []string
	var oldSubs []string
	replacedSubs := hasSubImages(c)
	if replacedSubs {
		newSubs = h.saveSubImages(c)
		for _, entry := range models.ParseImagesJSON(existing.ImagesJSON) {
			oldSubs = append(oldSubs, entry.Src)
		}
		imagesJSON = models.EncodeImagesJSON(newSubs)
	}

	sku := ""
	if payload.SKU != nil {
		sku = strings.TrimSpace(*payload.SKU)
	}
	p := &models.Product{
		ID:            payload.ID,
		Name:          *payload.Name,
		SKU:           sku,
		Price:         decimal.NewFromFloat(*payload.Price),
		StockQuantity: *payload.StockQuantity,
		Description:   *payload.Description,
		ImagePath:     mainName,
		ImagesJSON:    imagesJSON,
	}

	if err := h.Store.UpdateProduct(c.Request.Context(), p, categoryIDs); err != nil {
		if oldMain != "" {
			h.Images.Remove(mainName)
		}
		h.Images.RemoveAll(newSubs)
		fail(c, err)
		return
	}

	// The row now points at the new files; the replaced ones can go.
	if oldMain != "" {
		h.Images.Remove(oldMain)
	}
	if replacedSubs {
		h.Images.RemoveAll(oldSubs)
	}

	subImages := newSubs
	if !replacedSubs {
		subImages = []string{}
		for _, entry := range models.ParseImagesJSON(imagesJSON) {
			subImages = append(subImages, entry.Src)
		}
	}

	ok(c, "Product updated successfully.", gin.H{
		"product_id":   payload.ID,
		"main_image":   mainName,
		"sub_images":   subImages,
		"category_ids": categoryIDs,
	})
}

// DeleteProduct handles POST /v1/products/delete with the ID in the body.
func (h *Handlers) DeleteProduct(c *gin.Context) {
	var input struct {
		ID int64 `json:"id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.ID <= 0 {
		failValidation(c, "Invalid product ID")
		return
	}
	h.deleteProduct(c, input.ID)
}

// DeleteProductByID handles DELETE /v1/products/:id.
func (h *Handlers) DeleteProductByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		failValidation(c, "Invalid product ID")
		return
	}
	h.deleteProduct(c, id)
}

func (h *Handlers) deleteProduct(c *gin.Context, id int64) {
	p, _, err := h.Store.GetProduct(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	// Assets first, row second; missing files are skipped.
	h.Images.Remove(p.ImagePath)
	for _, entry := range models.ParseImagesJSON(p.ImagesJSON) {
		h.Images.Remove(entry.Src)
	}

	if err := h.Store.DeleteProduct(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	ok(c, "Product deleted successfully.", gin.H{"product_id": id})
}
