package model

// EvaluationTypeNormal 只有 normal 类型的记录才是分数
const EvaluationTypeNormal = "normal"

// EvaluationRecord Smartschool /results/api/v1/evaluations 返回的单条记录
// swagger:model EvaluationRecord
type EvaluationRecord struct {
	Type    string   `json:"type"`
	Date    string   `json:"date"`
	Name    string   `json:"name"`
	Period  *Period  `json:"period"`
	Courses []Course `json:"courses"`
	Graphic Graphic  `json:"graphic"`
}

type Period struct {
	Name string `json:"name"`
}

// Course 记录所属课程，graphic 字段只是图标
type Course struct {
	Name    string `json:"name"`
	Graphic *Icon  `json:"graphic,omitempty"`
}

// Icon 课程图标，type 为 "icon" 时 value 是图标名
type Icon struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// IsIcon 是否可以按图标渲染
func (i *Icon) IsIcon() bool {
	return i != nil && i.Type == "icon" && i.Value != ""
}

// Graphic 实际成绩：description 为分数文本（如 "8/15"），color 为学校给出的颜色标签
type Graphic struct {
	Description string `json:"description"`
	Color       string `json:"color"`
}

// Evaluation 归一化后的一次测验
// swagger:model Evaluation
type Evaluation struct {
	Date    string  `json:"date"`
	Name    string  `json:"name"`
	Graphic Graphic `json:"graphic"`
}

// EvaluationKey 同一次测验的身份：日期 + 名称
type EvaluationKey struct {
	Date string
	Name string
}

func (e Evaluation) Key() EvaluationKey {
	return EvaluationKey{Date: e.Date, Name: e.Name}
}
