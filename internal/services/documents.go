package services

// Document is an entry of the downloadable-documents catalog.
type Document struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

var documents = []Document{
	{1, "6대 공약 상세 계획서", "진안군 6대 핵심 공약의 구체적인 추진 방안과 예산 계획", "pdf", "file-pdf", "red-500"},
	{2, "면별 맞춤형 공약서", "11개 면별 특성에 맞는 맞춤형 정책 방안", "pdf", "file-pdf", "red-500"},
	{3, "기본사회위원회 구축 방안", "국민주권정부 시대 진안형 기본사회위원회 구축 계획", "docx", "file-word", "blue-500"},
	{4, "진안군 현황 분석", "인구, 경제, 사회 현황 및 문제점 분석 자료", "xlsx", "chart-bar", "green-500"},
	{5, "후보자 프로필", "이우규 후보자 상세 이력 및 활동 자료", "pdf", "image", "purple-500"},
	{6, "언론 보도 자료", "주요 언론의 후보자 및 공약 관련 보도 자료", "pdf", "newspaper", "indigo-500"},
}

// Documents returns a copy of the static download catalog.
func Documents() []Document {
	out := make([]Document, len(documents))
	copy(out, documents)
	return out
}
