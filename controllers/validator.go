package controllers

import (
	"errors"

	apperrors "furniture-service/common/errors"
	"furniture-service/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const msgInvalidBody = "Geçersiz istek gövdesi"

// fieldMessages maps "Field.tag" (or just "Field") of a failed binding rule
// to the message shown to the client.
type fieldMessages map[string]string

var (
	categoryMessages = fieldMessages{
		"Name": services.MsgCategoryNameMissing,
	}
	tagMessages = fieldMessages{
		"Name": services.MsgTagNameMissing,
	}
	productMessages = fieldMessages{
		"Name":        services.MsgProductNameMissing,
		"Description": services.MsgProductDescMissing,
		"Price":       "Ürün fiyatı zorunludur",
		"Price.gte":   "Ürün fiyatı negatif olamaz",
		"Category":    "Kategori seçimi zorunludur",
		"Stock.gte":   "Stok miktarı negatif olamaz",
	}
)

// bindJSON decodes and validates the body, translating the first failed
// rule into a localized validation error.
func bindJSON(c *gin.Context, obj interface{}, messages fieldMessages) error {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
			return apperrors.Validation(msg, err)
		}
		if msg, ok := messages[fe.Field()]; ok {
			return apperrors.Validation(msg, err)
		}
	}
	return apperrors.Validation(msgInvalidBody, err)
}
