package catalog

// Class is a school year holding subjects, e.g. "Class 10".
type Class struct {
	Name     string    `yaml:"name"`
	Subjects []Subject `yaml:"subjects"`
}

// Subject groups topics within a class, e.g. "Physics".
type Subject struct {
	Name   string  `yaml:"name"`
	Topics []Topic `yaml:"topics"`
}

// Topic is a leaf curriculum unit with a fixed introductory video.
type Topic struct {
	Name  string `yaml:"name"`
	Video string `yaml:"video"`
}

// file is the on-disk catalog document.
type file struct {
	Classes []Class `yaml:"classes"`
}
