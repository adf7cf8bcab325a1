package types

type BasePageData struct {
	Title  string
	Notice string
	Error  string
}

type FlashSetter interface {
	SetFlash(notice, errMsg string)
}

func (d *BasePageData) SetFlash(notice, errMsg string) {
	d.Notice = notice
	d.Error = errMsg
}

type CategoryTab struct {
	ID       Category
	Label    string
	Selected bool
}

type HomePageData struct {
	BasePageData
	SelectedCategory Category
	Categories       []CategoryTab
	Families         []*Family
}

type UploadPageData struct {
	BasePageData
	Categories []Category
	Ratings    []int
}
