package content

import (
	"context"
	"errors"
	"sync"

	"github.com/learnx/learnx/core"
	"github.com/learnx/learnx/core/session"
)

var (
	// errors
	ErrUploadInProgress = errors.New("an upload to this module is already in progress")
	ErrNoCourse         = errors.New("no course loaded")
)

type (
	// Api is the slice of the backend the module/file views consume. Role
	// decides between the /instructor and /student path families.
	Api interface {
		CourseModules(ctx context.Context, role session.Role, courseID string) ([]Module, error)
		CreateModule(ctx context.Context, courseID string, nm NewModule) (Module, error)
		DeleteModule(ctx context.Context, moduleID string) error
		ModuleFiles(ctx context.Context, role session.Role, moduleID string) ([]FileSummary, error)
		UploadModuleFile(ctx context.Context, moduleID string, up Upload) (Uploaded, error)
		DeleteFile(ctx context.Context, fileID string) error
		FileContent(ctx context.Context, role session.Role, fileID string) (FileContent, error)
	}

	// Service is the module-tree view-model for one selected course. Files
	// are fetched lazily per module and cached for the view's lifetime; the
	// cache entry is re-fetched after any mutation touching that module.
	Service struct {
		api      Api
		notifier core.Notifier
		logger   core.Logger
		role     session.Role

		courseID string
		modules  []Module

		mu        sync.Mutex
		files     map[string][]FileSummary
		uploading map[string]bool // per-module busy flag
	}
)

func NewService(api Api, notifier core.Notifier, logger core.Logger, role session.Role) *Service {
	return &Service{
		api:       api,
		notifier:  notifier,
		logger:    logger,
		role:      role,
		files:     make(map[string][]FileSummary),
		uploading: make(map[string]bool),
	}
}

// LoadModules fetches the module list of a course, resetting the per-module
// file cache. A malformed response falls back to an empty list.
func (svc *Service) LoadModules(ctx context.Context, courseID string) error {
	mods, err := svc.api.CourseModules(ctx, svc.role, courseID)
	if err != nil {
		svc.logger.Error("fetching modules", err)
		svc.modules = nil
	} else {
		svc.modules = mods
	}
	svc.courseID = courseID
	svc.mu.Lock()
	svc.files = make(map[string][]FileSummary)
	svc.mu.Unlock()
	return err
}

func (svc *Service) Modules() []Module { return svc.modules }

// AddModule creates a module then re-fetches the module list.
func (svc *Service) AddModule(ctx context.Context, nm NewModule) (Module, error) {
	if svc.courseID == "" {
		return Module{}, ErrNoCourse
	}
	if err := nm.Validate(); err != nil {
		return Module{}, err
	}
	mod, err := svc.api.CreateModule(ctx, svc.courseID, nm)
	if err != nil {
		svc.logger.Error("adding module", err)
		svc.notifier.Error("Error adding module")
		return Module{}, err
	}
	return mod, svc.reloadModules(ctx)
}

// RemoveModule deletes a module then re-fetches the module list.
func (svc *Service) RemoveModule(ctx context.Context, moduleID string) error {
	if err := svc.api.DeleteModule(ctx, moduleID); err != nil {
		svc.logger.Error("deleting module", err)
		svc.notifier.Error("Could not delete module")
		return err
	}
	svc.mu.Lock()
	delete(svc.files, moduleID)
	svc.mu.Unlock()
	return svc.reloadModules(ctx)
}

func (svc *Service) reloadModules(ctx context.Context) error {
	if svc.courseID == "" {
		return nil
	}
	mods, err := svc.api.CourseModules(ctx, svc.role, svc.courseID)
	if err != nil {
		svc.logger.Error("refreshing modules", err)
		return err
	}
	svc.modules = mods
	return nil
}

// Files returns a module's file list, fetching it on first access. A fetch
// failure caches an empty list so the view renders instead of wedging.
func (svc *Service) Files(ctx context.Context, moduleID string) ([]FileSummary, error) {
	svc.mu.Lock()
	cached, ok := svc.files[moduleID]
	svc.mu.Unlock()
	if ok {
		return cached, nil
	}
	return svc.refreshFiles(ctx, moduleID)
}

func (svc *Service) refreshFiles(ctx context.Context, moduleID string) ([]FileSummary, error) {
	files, err := svc.api.ModuleFiles(ctx, svc.role, moduleID)
	if err != nil {
		svc.logger.Error("fetching module files", err)
		files = []FileSummary{}
	}
	svc.mu.Lock()
	svc.files[moduleID] = files
	svc.mu.Unlock()
	return files, err
}

// UploadFile sends one file as multipart form data. Exactly one upload may
// be pending per module; a second is rejected client-side, mirroring the
// disabled control in the original UI. On success the module's file list is
// re-fetched.
func (svc *Service) UploadFile(ctx context.Context, moduleID string, up Upload) (Uploaded, error) {
	svc.mu.Lock()
	if svc.uploading[moduleID] {
		svc.mu.Unlock()
		return Uploaded{}, ErrUploadInProgress
	}
	svc.uploading[moduleID] = true
	svc.mu.Unlock()
	defer func() {
		svc.mu.Lock()
		delete(svc.uploading, moduleID)
		svc.mu.Unlock()
	}()

	uploaded, err := svc.api.UploadModuleFile(ctx, moduleID, up)
	if err != nil {
		svc.logger.Error("upload error", err)
		svc.notifier.Error("Upload failed")
		return Uploaded{}, err
	}
	svc.notifier.Success("Uploaded!")

	if _, err := svc.refreshFiles(ctx, moduleID); err != nil {
		return uploaded, err
	}
	return uploaded, nil
}

// Uploading reports the per-module busy flag.
func (svc *Service) Uploading(moduleID string) bool {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.uploading[moduleID]
}

// RemoveFile deletes a file and re-fetches only that module's file list; no
// other module's cache is touched.
func (svc *Service) RemoveFile(ctx context.Context, moduleID, fileID string) error {
	if err := svc.api.DeleteFile(ctx, fileID); err != nil {
		svc.logger.Error("deleting file", err)
		svc.notifier.Error("Could not delete file")
		return err
	}
	_, err := svc.refreshFiles(ctx, moduleID)
	return err
}

// Content fetches a file's binary payload for previewing.
func (svc *Service) Content(ctx context.Context, fileID string) (FileContent, error) {
	fc, err := svc.api.FileContent(ctx, svc.role, fileID)
	if err != nil {
		svc.logger.Error("fetching file content", err)
		svc.notifier.Error("Could not load file")
		return FileContent{}, err
	}
	return fc, nil
}
