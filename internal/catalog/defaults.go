package catalog

// Role tags shared by the default table and the dependency analyzer.
const (
	RoleAttachment = "attachment"
	RoleContent    = "content"
	RoleData       = "data"
	RoleFilePath   = "file_path"
	RoleImagePath  = "image_path"
)

var defaults = []Spec{
	{Name: "save_document", Output: CategoryFilePath, Provides: []string{RoleAttachment, RoleFilePath}, Requires: []string{RoleContent}, Description: "Generate a document file"},
	{Name: "generate_image", Output: CategoryFilePath, Provides: []string{RoleAttachment, RoleFilePath, RoleImagePath}, Description: "Generate an image file"},
	{Name: "create_travel_plan", Output: CategoryData, Provides: []string{RoleContent, RoleData, "travel_plan"}, Description: "Build a travel itinerary"},
	{Name: "contact_list", Output: CategoryData, Provides: []string{RoleContent, RoleData, "contacts"}, Description: "List contacts"},
	{Name: "contact_lookup", Output: CategoryData, Provides: []string{RoleContent, RoleData, "contact_info"}, Description: "Look up a contact"},
	{Name: "search_web", Output: CategoryData, Provides: []string{RoleContent, RoleData, "search_result"}, Description: "Search the web"},
	{Name: "crawl_webpage", Output: CategoryData, Provides: []string{RoleContent, RoleData, "crawl_result"}, Description: "Crawl a web page"},
	{Name: "search", Output: CategoryData, Provides: []string{RoleContent, RoleData, "search_result"}, Description: "Search for data"},
	{Name: "send_email", Output: CategoryStatus, Requires: []string{RoleAttachment, RoleFilePath}, Description: "Send an email"},
	{Name: "play_music", Output: CategoryStatus, Description: "Play music"},
	{Name: "get_weather", Output: CategoryData, Provides: []string{RoleContent, "weather_data"}, Description: "Fetch the weather"},
	{Name: "get_news", Output: CategoryData, Provides: []string{RoleContent, RoleData, "news"}, Description: "Fetch news"},
	{Name: "system_control", Output: CategoryStatus, Description: "Control the operating system"},
	{Name: "open_app", Output: CategoryStatus, Description: "Open an application"},
}

// Defaults returns a copy of the built-in operation table.
func Defaults() []Spec {
	out := make([]Spec, len(defaults))
	for i, s := range defaults {
		out[i] = s.clone()
	}
	return out
}
