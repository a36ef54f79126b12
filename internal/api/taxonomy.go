package api

// Content taxonomy as the platform defines it. The sentinel values
// (CategoryAll, DifficultyAll, ContentTypeAll) mean "no constraint" and are
// never sent on the wire.

type Category string

const (
	CategoryAll             Category = "all"
	CategorySavings         Category = "SAVINGS"
	CategoryInvestments     Category = "INVESTMENTS"
	CategoryLoans           Category = "LOANS"
	CategoryBudgeting       Category = "BUDGETING"
	CategoryGroupManagement Category = "GROUP_MANAGEMENT"
	CategoryInsurance       Category = "INSURANCE"
	CategoryRetirement      Category = "RETIREMENT"
)

type Difficulty string

const (
	DifficultyAll          Difficulty = "all"
	DifficultyBeginner     Difficulty = "BEGINNER"
	DifficultyIntermediate Difficulty = "INTERMEDIATE"
	DifficultyAdvanced     Difficulty = "ADVANCED"
	DifficultyExpert       Difficulty = "EXPERT"
)

type ContentType string

const (
	ContentTypeAll      ContentType = "all"
	ContentTypeArticle  ContentType = "ARTICLE"
	ContentTypeVideo    ContentType = "VIDEO"
	ContentTypeTutorial ContentType = "TUTORIAL"
	ContentTypeQuiz     ContentType = "QUIZ"
	ContentTypeCourse   ContentType = "COURSE"
	ContentTypeEbook    ContentType = "EBOOK"
)

type SortOrder string

const (
	SortPopular  SortOrder = "popular"
	SortRecent   SortOrder = "recent"
	SortDuration SortOrder = "duration"
	SortViews    SortOrder = "views"
)

// Categories lists every selectable category, sentinel first.
func Categories() []Category {
	return []Category{
		CategoryAll,
		CategorySavings,
		CategoryInvestments,
		CategoryLoans,
		CategoryBudgeting,
		CategoryGroupManagement,
		CategoryInsurance,
		CategoryRetirement,
	}
}

// Difficulties lists every selectable difficulty, sentinel first.
func Difficulties() []Difficulty {
	return []Difficulty{
		DifficultyAll,
		DifficultyBeginner,
		DifficultyIntermediate,
		DifficultyAdvanced,
		DifficultyExpert,
	}
}

// ContentTypes lists every selectable content type, sentinel first.
func ContentTypes() []ContentType {
	return []ContentType{
		ContentTypeAll,
		ContentTypeArticle,
		ContentTypeVideo,
		ContentTypeTutorial,
		ContentTypeQuiz,
		ContentTypeCourse,
		ContentTypeEbook,
	}
}

// SortOrders lists every sort order. SortPopular is the default; there is no
// sentinel because listings are always sorted by something.
func SortOrders() []SortOrder {
	return []SortOrder{SortPopular, SortRecent, SortDuration, SortViews}
}

func (c Category) Valid() bool {
	for _, v := range Categories() {
		if c == v {
			return true
		}
	}
	return false
}

func (d Difficulty) Valid() bool {
	for _, v := range Difficulties() {
		if d == v {
			return true
		}
	}
	return false
}

func (t ContentType) Valid() bool {
	for _, v := range ContentTypes() {
		if t == v {
			return true
		}
	}
	return false
}

func (s SortOrder) Valid() bool {
	for _, v := range SortOrders() {
		if s == v {
			return true
		}
	}
	return false
}
