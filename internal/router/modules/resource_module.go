package modules

import "github.com/gin-gonic/gin"

// Resource is a CRUD handler that mounts itself under a path.
type Resource interface {
	Register(rg *gin.RouterGroup, path string)
}

type Mount struct {
	Path    string
	Handler Resource
}

// ResourceModule mounts list/get/create/update/delete for every entity kind.
type ResourceModule struct {
	Guard  Guard
	Mounts []Mount
}

func NewResourceModule(g Guard, mounts ...Mount) *ResourceModule {
	return &ResourceModule{Guard: g, Mounts: mounts}
}

func (m *ResourceModule) Register(rg *gin.RouterGroup) {
	auth := m.Guard.Group(rg)
	for _, mt := range m.Mounts {
		mt.Handler.Register(auth, mt.Path)
	}
}
