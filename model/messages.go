package model

var (
	MsgTitleTooLong = NewText("zh", map[string]string{
		"zh": "标题不能超过 %d 个字符！",
		"en": "The title cannot exceed %d characters!",
	})

	MsgDescriptionTooLong = NewText("zh", map[string]string{
		"zh": "简介不能超过 %d 个字符！",
		"en": "The description cannot exceed %d characters!",
	})

	MsgSubmitted = NewText("zh", map[string]string{
		"zh": "帖子提交成功！",
		"en": "Post submitted!",
	})

	MsgSubmitFailed = NewText("zh", map[string]string{
		"zh": "提交帖子时出错！",
		"en": "Something went wrong while submitting the post!",
	})

	MsgSubmitRejected = NewText("zh", map[string]string{
		"zh": "帖子提交失败（HTTP %d）",
		"en": "The post was rejected (HTTP %d)",
	})

	MsgPreviewHeading = NewText("zh", map[string]string{
		"zh": "预览效果",
		"en": "Preview",
	})

	MsgPageTitle = NewText("zh", map[string]string{
		"zh": "发布帖子",
		"en": "New post",
	})

	MsgCategoryLabel = NewText("zh", map[string]string{
		"zh": "帖子分区",
		"en": "Section",
	})

	MsgCategoryPlaceholder = NewText("zh", map[string]string{
		"zh": "选择你的帖子类型",
		"en": "Choose what kind of post this is",
	})

	MsgTitleLabel = NewText("zh", map[string]string{
		"zh": "标题",
		"en": "Title",
	})

	MsgDescriptionLabel = NewText("zh", map[string]string{
		"zh": "简介",
		"en": "Summary",
	})

	MsgContentPlaceholder = NewText("zh", map[string]string{
		"zh": "请使用 Markdown 语法进行编辑",
		"en": "Write using Markdown",
	})

	MsgTagsLabel = NewText("zh", map[string]string{
		"zh": "选择帖子标签：",
		"en": "Tags:",
	})

	MsgSubmitButton = NewText("zh", map[string]string{
		"zh": "提交",
		"en": "Submit",
	})
)
