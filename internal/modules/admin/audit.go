package admin

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-space/core/internal/middleware"
	"github.com/portfolio-space/core/internal/models"
	"github.com/portfolio-space/core/internal/pkg/pagination"
	"github.com/portfolio-space/core/internal/pkg/response"
	"github.com/portfolio-space/core/internal/pkg/textutil"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxReprLength = 200

// AuditLog appends one entry per admin write.
type AuditLog struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewAuditLog(db *gorm.DB, log *zap.Logger) *AuditLog {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuditLog{db: db, log: log}
}

// Record stores an entry for the request's user. Failures are logged only;
// the write it describes has already happened.
func (a *AuditLog) Record(c *gin.Context, entity, objectID, repr, action, message string) {
	entry := models.AdminLogModel{
		UserID:     middleware.CurrentUserID(c),
		Username:   middleware.CurrentUsername(c),
		Entity:     entity,
		ObjectID:   objectID,
		ObjectRepr: textutil.Truncate(repr, maxReprLength-1),
		Action:     action,
		Message:    message,
	}
	if err := a.db.Create(&entry).Error; err != nil {
		a.log.Warn("admin log write failed", zap.String("entity", entity), zap.Error(err))
	}
}

// List returns entries newest first.
func (a *AuditLog) List(q pagination.Query) ([]models.AdminLogModel, response.Pagination, error) {
	var items []models.AdminLogModel
	db := a.db.Model(&models.AdminLogModel{}).Order("created_at DESC").Order("id DESC")
	pag, err := pagination.Paginate(db, q, &items)
	return items, pag, err
}

// changedFields lists the top-level keys of a JSON object body.
func changedFields(body []byte) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || len(fields) == 0 {
		return "nothing"
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}
