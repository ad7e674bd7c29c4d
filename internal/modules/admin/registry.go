package admin

import (
	"github.com/portfolio-space/core/internal/models"
	"github.com/portfolio-space/core/internal/modules/content/award"
	"github.com/portfolio-space/core/internal/modules/content/blogpost"
	"github.com/portfolio-space/core/internal/modules/content/gallery"
	"github.com/portfolio-space/core/internal/modules/content/message"
	"github.com/portfolio-space/core/internal/modules/content/project"
	"github.com/portfolio-space/core/internal/modules/content/testimonial"
	"github.com/portfolio-space/core/internal/modules/system/core/settings"
	"gorm.io/gorm"
)

// Registry holds the registered entities in display order.
type Registry struct {
	order []string
	byKey map[string]Entity
}

func NewRegistry() *Registry {
	return &Registry{byKey: map[string]Entity{}}
}

// Register adds e. A second entity with the same key replaces the first.
func (r *Registry) Register(e Entity) {
	key := e.Descriptor().Key
	if _, ok := r.byKey[key]; !ok {
		r.order = append(r.order, key)
	}
	r.byKey[key] = e
}

func (r *Registry) Get(key string) (Entity, bool) {
	e, ok := r.byKey[key]
	return e, ok
}

// Entities returns the entities in registration order.
func (r *Registry) Entities() []Entity {
	out := make([]Entity, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.byKey[k])
	}
	return out
}

// Services are the content services the default registry is built from.
type Services struct {
	Projects     *project.Service
	Awards       *award.Service
	Gallery      *gallery.Service
	BlogPosts    *blogpost.Service
	Testimonials *testimonial.Service
	Messages     *message.Service
	Settings     *settings.Service
}

// DefaultRegistry registers every portfolio entity.
func DefaultRegistry(db *gorm.DB, s Services) *Registry {
	r := NewRegistry()
	r.Register(NewBioEntity(s.Settings))
	r.Register(NewCollection(db, &ProjectDescriptor, CollectionOps[models.ProjectModel, project.CreateProjectDTO, project.UpdateProjectDTO]{
		Get:    s.Projects.GetByID,
		Create: s.Projects.Create,
		Update: s.Projects.Update,
		Delete: s.Projects.Delete,
		Repr:   func(m *models.ProjectModel) string { return m.Title },
	}))
	r.Register(NewCollection(db, &AwardDescriptor, CollectionOps[models.AwardModel, award.CreateAwardDTO, award.UpdateAwardDTO]{
		Get:    s.Awards.GetByID,
		Create: s.Awards.Create,
		Update: s.Awards.Update,
		Delete: s.Awards.Delete,
		Repr:   func(m *models.AwardModel) string { return m.Name },
	}))
	r.Register(NewCollection(db, &GalleryDescriptor, CollectionOps[models.GalleryImageModel, gallery.CreateImageDTO, gallery.UpdateImageDTO]{
		Get:    s.Gallery.GetByID,
		Create: s.Gallery.Create,
		Update: s.Gallery.Update,
		Delete: s.Gallery.Delete,
		Repr:   func(m *models.GalleryImageModel) string { return m.Caption },
	}))
	r.Register(NewCollection(db, &BlogPostDescriptor, CollectionOps[models.BlogPostModel, blogpost.CreatePostDTO, blogpost.UpdatePostDTO]{
		Get:       s.BlogPosts.GetByID,
		Create:    s.BlogPosts.Create,
		Update:    s.BlogPosts.Update,
		Delete:    s.BlogPosts.Delete,
		Repr:      func(m *models.BlogPostModel) string { return m.Title },
		AfterList: s.BlogPosts.AttachTags,
	}))
	r.Register(NewCollection(db, &TestimonialDescriptor, CollectionOps[models.TestimonialModel, testimonial.CreateTestimonialDTO, testimonial.UpdateTestimonialDTO]{
		Get:    s.Testimonials.GetByID,
		Create: s.Testimonials.Create,
		Update: s.Testimonials.Update,
		Delete: s.Testimonials.Delete,
		Repr:   func(m *models.TestimonialModel) string { return m.Author + " - " + m.Organization },
	}))
	r.Register(NewCollection(db, &MessageDescriptor, CollectionOps[models.MessageModel, message.CreateMessageDTO, message.UpdateMessageDTO]{
		Get:    s.Messages.GetByID,
		Create: s.Messages.Create,
		Update: s.Messages.Update,
		Delete: s.Messages.Delete,
		Repr:   func(m *models.MessageModel) string { return m.Name + " - " + m.Subject },
		Actions: map[string]func([]string) (int64, error){
			ActionMarkRead:    s.Messages.MarkRead,
			ActionMarkReplied: s.Messages.MarkReplied,
		},
		Unread: s.Messages.UnreadCount,
	}))
	r.Register(NewSiteSettingsEntity(s.Settings))
	return r
}
