package apierrors

import (
	"fmt"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/zap"

	"tasktime/pkg/translator"
)

// JsonErr is the error body returned by the API.
type JsonErr struct {
	ErrDetails Err `json:"error"`
}

type Err struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e JsonErr) Error() string {
	return fmt.Sprintf("Code: %d, Message: %s", e.ErrDetails.Code, e.ErrDetails.Message)
}

// CreateError builds a JsonErr whose message is translated into lang.
func CreateError(code int, msgKey string, lang string) JsonErr {
	return JsonErr{ErrDetails: Err{Code: code, Message: GetTransErrorMsg(msgKey, lang)}}
}

// GetTransErrorMsg translates msgKey, falling back to english and then to the key itself.
func GetTransErrorMsg(msgKey string, lang string) string {
	if translator.Translator == nil {
		return msgKey
	}
	l := i18n.NewLocalizer(translator.Translator, lang, translator.LanguageEn)
	msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: msgKey})
	if err != nil {
		zap.L().Warn("translation not found", zap.String("lang", lang), zap.String("message_id", msgKey), zap.Error(err))
		return msgKey
	}
	return msg
}
