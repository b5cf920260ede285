package service

import (
	"context"
	"mime/multipart"
	"time"

	"classroom-chat/biz/adaptor"
	"classroom-chat/biz/application/dto/classroom/core"
	"classroom-chat/biz/infrastructure/cache"
	"classroom-chat/biz/infrastructure/consts"
	"classroom-chat/biz/infrastructure/repository/file"
	"classroom-chat/biz/infrastructure/storage"
	"classroom-chat/biz/infrastructure/util"
	"classroom-chat/biz/infrastructure/util/log"

	"github.com/google/wire"
	"github.com/jinzhu/copier"
)

type IFileService interface {
	ListFiles(ctx context.Context, req *core.ListFilesReq) (*core.ListFilesResp, error)
	UploadFile(ctx context.Context, joinCode string, fh *multipart.FileHeader, resultChan chan<- string) error
	DeleteFile(ctx context.Context, req *core.DeleteFileReq) (*core.Response, error)
	DownloadFile(ctx context.Context, req *core.DownloadFileReq) (*core.DownloadFileResp, error)
}

type FileService struct {
	FileMapper     FileStore
	RoomMapper     RoomStore
	UserMapper     UserStore
	Storage        ObjectStorage
	UrlCacheMapper cache.IUrlCacheMapper
}

var FileServiceSet = wire.NewSet(
	wire.Struct(new(FileService), "*"),
	wire.Bind(new(IFileService), new(*FileService)),
)

// ListFiles 获取教室文件列表，仅教室成员可见
func (s *FileService) ListFiles(ctx context.Context, req *core.ListFilesReq) (*core.ListFilesResp, error) {
	meta := adaptor.ExtractUserMeta(ctx)
	if meta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}
	if err := s.checkMember(ctx, req.JoinCode, meta.GetUserId()); err != nil {
		return nil, err
	}

	files, err := s.FileMapper.FindByJoinCode(ctx, req.JoinCode)
	if err != nil {
		log.Error("获取文件列表失败: %v", err)
		return nil, consts.ErrGetFileList
	}

	infos := make([]*core.FileInfo, 0, len(files))
	for _, val := range files {
		info := &core.FileInfo{}
		if err := copier.Copy(info, val); err != nil {
			return nil, err
		}
		info.Id = val.ID.Hex()
		info.CreateTime = val.CreateTime.Unix()
		infos = append(infos, info)
	}

	return &core.ListFilesResp{
		Files: infos,
		Total: int64(len(infos)),
	}, nil
}

// UploadFile 上传教室文件，上传进度按0-100百分比流式推送
func (s *FileService) UploadFile(ctx context.Context, joinCode string, fh *multipart.FileHeader, resultChan chan<- string) error {
	meta := adaptor.ExtractUserMeta(ctx)
	if meta.GetUserId() == "" {
		util.SendStreamMessage(resultChan, util.STError, "用户未认证", nil)
		return consts.ErrNotAuthentication
	}

	r, err := s.RoomMapper.FindOneByJoinCode(ctx, joinCode)
	if err != nil {
		util.SendStreamMessage(resultChan, util.STError, "教室不存在", nil)
		return consts.ErrNotFound
	}
	if r.TeacherID != meta.GetUserId() {
		util.SendStreamMessage(resultChan, util.STError, "仅教师可上传文件", nil)
		return consts.ErrNotTeacher
	}

	src, err := fh.Open()
	if err != nil {
		log.Error("打开上传文件失败: %v", err)
		util.SendStreamMessage(resultChan, util.STError, "上传文件失败", nil)
		return consts.ErrUploadFile
	}
	defer src.Close()

	key := storage.BuildObjectKey(joinCode, fh.Filename)
	util.SendStreamMessage(resultChan, util.STInit, "开始上传", map[string]any{"percent": 0})

	url, err := s.Storage.Upload(ctx, key, src, fh.Size, func(percent int) {
		util.SendStreamMessage(resultChan, util.STPart, "", map[string]any{"percent": percent})
	})
	if err != nil {
		log.Error("上传对象失败: %v", err)
		util.SendStreamMessage(resultChan, util.STError, "上传文件失败", nil)
		return consts.ErrUploadFile
	}

	asset := &file.FileAsset{
		JoinCode: joinCode,
		Name:     fh.Filename,
		Path:     key,
		Url:      url,
	}
	if err := s.FileMapper.Insert(ctx, asset); err != nil {
		log.Error("文件元信息写入失败: %v", err)
		util.SendStreamMessage(resultChan, util.STError, "上传文件失败", nil)
		return consts.ErrUploadFile
	}

	util.SendStreamMessage(resultChan, util.STComplete, "上传完成", &core.UploadFileResp{
		Name: asset.Name,
		Path: asset.Path,
		Url:  asset.Url,
	})
	return nil
}

// DeleteFile 删除教室文件，先删对象再删元信息
func (s *FileService) DeleteFile(ctx context.Context, req *core.DeleteFileReq) (*core.Response, error) {
	meta := adaptor.ExtractUserMeta(ctx)
	if meta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}

	asset, err := s.FileMapper.FindOneByPath(ctx, req.Path)
	if err != nil {
		return nil, consts.ErrNotFound
	}
	r, err := s.RoomMapper.FindOneByJoinCode(ctx, asset.JoinCode)
	if err == nil {
		if r.TeacherID != meta.GetUserId() {
			return nil, consts.ErrNotTeacher
		}
	} else {
		// 教室已删除留下的孤儿文件，仅教师角色可清理
		u, uerr := s.UserMapper.FindOne(ctx, meta.GetUserId())
		if uerr != nil || u.Role != consts.RoleTeacher {
			return nil, consts.ErrNotTeacher
		}
	}

	if err := s.Storage.Delete(ctx, req.Path); err != nil {
		log.Error("删除对象失败: %v", err)
		return nil, consts.ErrDeleteFile
	}
	if err := s.FileMapper.DeleteByPath(ctx, req.Path); err != nil {
		log.Error("删除文件元信息失败: %v", err)
		return nil, consts.ErrDeleteFile
	}
	if err := s.UrlCacheMapper.Delete(ctx, req.Path); err != nil {
		log.Error("清理下载链接缓存失败: %v", err)
		// 缓存清理失败不影响删除结果
	}

	return util.Succeed("删除成功")
}

// DownloadFile 获取文件加签下载链接，命中缓存直接返回
func (s *FileService) DownloadFile(ctx context.Context, req *core.DownloadFileReq) (*core.DownloadFileResp, error) {
	meta := adaptor.ExtractUserMeta(ctx)
	if meta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}

	asset, err := s.FileMapper.FindOneByPath(ctx, req.Path)
	if err != nil {
		return nil, consts.ErrNotFound
	}
	if err := s.checkMember(ctx, asset.JoinCode, meta.GetUserId()); err != nil {
		return nil, err
	}

	if cachedUrl, err := s.UrlCacheMapper.Get(ctx, req.Path); err == nil {
		log.Info("缓存命中，直接返回下载链接, path: %s", req.Path)
		return &core.DownloadFileResp{Url: cachedUrl}, nil
	}

	url, err := s.Storage.PresignGet(req.Path, time.Hour)
	if err != nil {
		log.Error("生成加签下载链接失败: %v", err)
		return nil, consts.ErrDownloadFile
	}

	if err := s.UrlCacheMapper.Set(ctx, req.Path, url); err != nil {
		log.Error("存储缓存失败: %v", err)
		// 缓存失败不影响正常返回结果
	}

	return &core.DownloadFileResp{Url: url}, nil
}

// checkMember 校验用户是教室的创建教师或名册学生
func (s *FileService) checkMember(ctx context.Context, joinCode, userID string) error {
	r, err := s.RoomMapper.FindOneByJoinCode(ctx, joinCode)
	if err != nil {
		return consts.ErrNotFound
	}
	if r.TeacherID != userID && !r.HasStudent(userID) {
		return consts.ErrNotRoomMember
	}
	return nil
}
