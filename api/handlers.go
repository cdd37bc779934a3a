package api

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(deps Dependencies) *routeHandlers {
	return &routeHandlers{
		authHandler:    newAuthHandler(deps.Auth),
		projectHandler: newProjectHandler(deps.Projects, deps.Likes, deps.Editors),
		editorHandler:  newEditorHandler(deps.Editors, deps.Projects, deps.Importer, deps.MaxUploadBytes),
		contentHandler: newContentHandler(deps.Content),
		skillHandler:   newSkillHandler(deps.Skills),
		uploadHandler:  newUploadHandler(deps.Uploader, deps.MaxUploadBytes),
	}
}
