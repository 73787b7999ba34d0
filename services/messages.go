package services

// Client-facing messages. The catalog is served to a Turkish storefront.
const (
	MsgCategoryNotFound    = "Kategori bulunamadı"
	MsgTagNotFound         = "Etiket bulunamadı"
	MsgProductNotFound     = "Ürün bulunamadı"
	MsgCategoryDeleted     = "Kategori başarıyla silindi"
	MsgTagDeleted          = "Etiket başarıyla silindi"
	MsgProductDeleted      = "Ürün başarıyla silindi"
	MsgCategoryNameMissing = "Kategori adı zorunludur"
	MsgTagNameMissing      = "Etiket adı zorunludur"
	MsgProductNameMissing  = "Ürün adı zorunludur"
	MsgProductDescMissing  = "Ürün açıklaması zorunludur"
	MsgCategoryDuplicate   = "Bu isimde bir kategori zaten var"
	MsgTagDuplicate        = "Bu isimde bir etiket zaten var"
	MsgInvalidID           = "Geçersiz kimlik"
	MsgInvalidTagID        = "Geçersiz etiket kimliği"
	MsgNoProductsInCat     = "Bu kategoride ürün bulunamadı"
	MsgNoProductsWithTag   = "Bu etikete sahip ürün bulunamadı"
	MsgQueryMissing        = "Lütfen bir arama sorgusu girin"
	MsgNoRecommendations   = "Aramanıza uygun ürün bulunamadı"
	MsgImageTypeInvalid    = "Geçersiz dosya türü, yalnızca görseller yüklenebilir"
	MsgUploadsDisabled     = "Görsel yükleme yapılandırılmamış"
)
