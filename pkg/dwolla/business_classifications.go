package dwolla

// BusinessClassification is a top-level business category with its industries.
type BusinessClassification struct {
	ID       string                      `json:"id"                  yaml:"id"`
	Name     string                      `json:"name"                yaml:"name"`
	Embedded *IndustryClassificationList `json:"_embedded,omitempty" yaml:"embedded,omitempty"`
	Links    Links                       `json:"_links,omitempty"    yaml:"links,omitempty"`
}

// Industries returns the industry classifications of the category.
func (b *BusinessClassification) Industries() []IndustryClassification {
	if b.Embedded == nil {
		return nil
	}

	return b.Embedded.IndustryClassifications
}

// IndustryClassificationList is the _embedded object of a business classification.
type IndustryClassificationList struct {
	IndustryClassifications []IndustryClassification `json:"industry-classifications" yaml:"industryClassifications"`
}

// IndustryClassification is the value passed as businessClassification when creating a business customer.
type IndustryClassification struct {
	ID    string `json:"id"               yaml:"id"`
	Name  string `json:"name"             yaml:"name"`
	Links Links  `json:"_links,omitempty" yaml:"links,omitempty"`
}

// BusinessClassificationList is the list of business classifications.
type BusinessClassificationList = HALList[BusinessClassification]
