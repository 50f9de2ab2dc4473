package protocol

// ExampleJSON 返回一份覆盖主要字段的示例协议，供 -init 输出。
func ExampleJSON() string {
	return `{
  "canvas": {"width": 1242, "height": 1660, "background": "#FFF8E7", "debug": false},
  "images": [
    {"id": "cover", "path": "images/cover.png", "x": 121, "y": 200, "width": 1000, "height": 750, "opacity": 1.0}
  ],
  "texts": [
    {
      "id": "title",
      "content": "${event.title|夏日市集}",
      "x": 121, "y": 1000, "width": 1000,
      "fontFamily": "SourceHanSansCN-Bold", "fontSize": 96,
      "fillColor": "#1F2937", "strokeColor": "#FFFFFF", "strokeWidth": 4,
      "hasShadow": true, "shadowDx": 4, "shadowDy": 6, "shadowColor": "rgba(0,0,0,0.35)",
      "displayMode": "SingleLine", "ellipsis": true
    },
    {
      "id": "desc",
      "content": "Fresh fruit, handmade crafts and live music every weekend in the old harbour square.",
      "x": 121, "y": 1160, "width": 1000, "height": 220,
      "fontFamily": "SourceHanSansCN-Regular", "fontSize": 48,
      "fillColor": "#374151", "displayMode": "AutoFit"
    },
    {
      "id": "price",
      "x": 121, "y": 1450, "rotation": -4,
      "fontFamily": "站酷快乐体", "fontSize": 56, "fillColor": "#111827",
      "richTextStrategy": "measureText", "letterSpacing": 8,
      "richTextSegments": [
        {"content": "门票 "},
        {"content": "¥39", "fontSize": 88, "fillColor": "#DC2626", "strokeWidth": 2, "strokeColor": "#FFFFFF"},
        {"content": " 起", "hasShadow": true, "shadowDx": 2, "shadowDy": 2, "shadowColor": "#9CA3AF"}
      ]
    }
  ],
  "output": {"format": "png", "filename": "output/poster.png", "quality": 90}
}
`
}
